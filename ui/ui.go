// Package ui provides the thermal lab demo TUI for simkit. It composes
// the widget package's controls over a simulated chamber and surfaces
// every announcement visually: a live region line, a scrollable history
// pane, and optional speech and chime sinks.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/muesli/reflow/truncate"

	"github.com/simfoundry/simkit/alert"
	"github.com/simfoundry/simkit/widget"
)

const (
	statusMessageTimeout = time.Second * 3
	ellipsis             = "…"

	// Vertical cells taken by everything that is not the history pane.
	chromeHeight = 22
)

// NewProgram returns a new Tea program running the thermal lab.
func NewProgram(cfg Config) *tea.Program {
	log.Debug(
		"starting thermal lab",
		"interval", cfg.Alert.Interval,
		"muted", cfg.Alert.Muted,
		"speech", cfg.Alert.Speech.Enabled,
		"chime", cfg.Alert.Chime,
	)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return tea.NewProgram(newModel(cfg), opts...)
}

// control is the common surface of the focusable widgets.
type control interface {
	Focus()
	Blur()
	Update(tea.Msg) tea.Cmd
}

type model struct {
	cfg      Config
	fatalErr error

	lab     *lab
	queue   *alert.Queue
	capture *captureSink

	temperature *widget.Slider
	heater      *widget.Keypad
	pressure    *widget.Gauge
	vent        *widget.Button

	controls []control
	focus    int

	history  historyModel
	liveText string
	status   string

	showHelp bool
	helpView string

	width  int
	height int
}

func newModel(cfg Config) model {
	m := model{cfg: cfg, history: newHistoryModel()}

	l, err := newLab()
	if err != nil {
		m.fatalErr = err
		return m
	}
	m.lab = l

	m.capture = &captureSink{}
	opts := append(cfg.Alert.ToQueueOptions(), alert.WithSink(buildSink(cfg.Alert, m.capture)))
	m.queue = alert.NewQueue(opts...)

	m.temperature = widget.NewSlider("Temperature", l.temperature,
		widget.WithSliderUnit("°C"),
		widget.WithSliderQueue(m.queue),
	)
	m.heater = widget.NewKeypad("Heater power", l.heaterPower,
		widget.WithKeypadUnit("watts"),
		widget.WithKeypadQueue(m.queue),
	)
	m.pressure = widget.NewGauge("Pressure", l.pressure,
		widget.WithGaugeUnit("kPa"),
		widget.WithGaugeQueue(m.queue),
	)
	m.vent = widget.NewButton("Vent valve",
		widget.WithToggle(l.vent),
		widget.WithButtonQueue(m.queue),
	)

	m.controls = []control{m.temperature, m.heater, m.vent}
	m.controls[0].Focus()

	return m
}

func (m model) Init() tea.Cmd {
	if m.fatalErr != nil {
		return nil
	}
	return alert.TickCmd(m.queue.Interval())
}

func (m *model) setSize(width, height int) {
	m.width = width
	m.height = height

	historyHeight := height - chromeHeight
	if historyHeight < 3 {
		historyHeight = 3
	}
	m.history.setSize(width-2, historyHeight)
}

func (m *model) cycleFocus(delta int) {
	m.controls[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.controls)) % len(m.controls)
	m.controls[m.focus].Focus()
}

func (m *model) toggleMute() tea.Cmd {
	muted := !m.queue.Muted()
	m.queue.SetMuted(muted)
	if muted {
		m.status = "alerts muted"
	} else {
		m.status = "alerts on"
		m.queue.EnqueueText("Alerts on")
	}
	return clearStatusCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// If there's been an error, any key exits.
	if m.fatalErr != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Quit
		}
		return m, nil
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case errMsg:
		m.fatalErr = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)

	case alert.TickMsg:
		m.queue.Tick()
		for _, text := range m.capture.drain() {
			m.liveText = text
			m.history.add(text, time.Now())
		}
		return m, alert.TickCmd(m.queue.Interval())

	case historyCopiedMsg:
		if msg.err != nil {
			log.Warn("clipboard copy failed", "error", msg.err)
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "history copied"
		}
		return m, clearStatusCmd()

	case historyExportedMsg:
		if msg.err != nil {
			log.Warn("history export failed", "error", msg.err)
			m.status = "export failed: " + msg.err.Error()
		} else {
			log.Debug("history exported", "path", msg.path)
			m.status = "exported to " + msg.path
		}
		return m, clearStatusCmd()

	case statusTimeoutMsg:
		m.status = ""
		return m, nil

	case ConfigReloadedMsg:
		if err := m.queue.SetInterval(msg.Interval); err != nil {
			log.Warn("ignoring reloaded interval", "interval", msg.Interval, "error", err)
		}
		m.queue.SetMuted(msg.Muted)
		log.Debug("config reloaded", "interval", msg.Interval, "muted", msg.Muted)
		m.status = "config reloaded"
		return m, clearStatusCmd()

	case tea.MouseMsg:
		return m, m.history.update(msg)

	case tea.KeyMsg:
		// The filter input captures everything while editing.
		if m.history.filterState == filtering {
			switch msg.String() {
			case "enter":
				m.history.applyFilter()
				return m, nil
			case "esc":
				m.history.resetFilter()
				return m, nil
			default:
				return m, m.history.update(msg)
			}
		}

		if m.showHelp {
			switch msg.String() {
			case "?", "esc", "q":
				m.showHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			if m.queue.Running() {
				if err := m.queue.Stop(); err != nil {
					log.Warn("queue stop failed", "error", err)
				}
			}
			return m, tea.Quit

		case "tab":
			m.cycleFocus(1)
			return m, nil

		case "shift+tab":
			m.cycleFocus(-1)
			return m, nil

		case "m":
			return m, m.toggleMute()

		case "?":
			help, err := renderHelp(m.width, m.cfg.GlamourStyle)
			if err != nil {
				log.Warn("help rendering failed", "error", err)
				return m, nil
			}
			m.helpView = help
			m.showHelp = true
			return m, nil

		case "/":
			if m.cfg.ShowHistory {
				m.history.startFiltering()
			}
			return m, nil

		case "y":
			return m, copyHistoryCmd(m.history.plain())

		case "e":
			return m, exportHistoryCmd(m.history, m.cfg.ExportDir)

		case "esc":
			if m.history.filterState == filterApplied {
				m.history.resetFilter()
				return m, nil
			}

		case "j", "k", "ctrl+d", "ctrl+u":
			return m, m.history.update(msg)
		}

		cmds = append(cmds, m.controls[m.focus].Update(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	if m.fatalErr != nil {
		return errorView(m.fatalErr, true)
	}
	if m.showHelp {
		return m.helpView
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Thermal Lab"))
	b.WriteString("\n\n")

	b.WriteString(m.temperature.View())
	b.WriteString("\n\n")
	b.WriteString(m.heater.View())
	b.WriteString("\n\n")
	b.WriteString(m.pressure.View())
	b.WriteString("\n\n")
	b.WriteString(m.vent.View())
	b.WriteString("\n\n")

	b.WriteString(m.liveRegionView())
	b.WriteString("\n")

	if m.cfg.ShowHistory {
		b.WriteString("\n")
		b.WriteString(m.history.view())
		b.WriteString("\n")
	}

	hints := "tab: focus • m: mute • /: filter • y: copy • e: export • ?: help • q: quit"
	if m.status != "" {
		hints = m.status
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(hints))

	return b.String()
}

// liveRegionView renders the latest announcement, truncated to the
// window width.
func (m model) liveRegionView() string {
	text := m.liveText
	if text == "" {
		text = "ready"
	}

	width := m.width - 4
	if width < 10 {
		width = 10
	}
	line := truncate.StringWithTail(text, uint(width), ellipsis)

	if m.queue.Muted() {
		return liveRegionStyle.Render(line) + " " + mutedBadgeStyle.Render("[muted]")
	}
	return liveRegionStyle.Render(line)
}

func errorView(err error, fatal bool) string {
	exitMsg := "press any key to "
	if fatal {
		exitMsg += "exit"
	} else {
		exitMsg += "return"
	}
	s := fmt.Sprintf("%s\n\n%v\n\n%s",
		errorTitleStyle.Render("ERROR"),
		err,
		subtleStyle.Render(exitMsg),
	)
	return "\n" + indent(s, 3)
}

// COMMANDS

func copyHistoryCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return historyCopiedMsg{err: clipboard.WriteAll(text)}
	}
}

func exportHistoryCmd(h historyModel, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := h.export(dir)
		return historyExportedMsg{path: path, err: err}
	}
}

func clearStatusCmd() tea.Cmd {
	return tea.Tick(statusMessageTimeout, func(time.Time) tea.Msg {
		return statusTimeoutMsg{}
	})
}

// Lightweight version of reflow's indent function.
func indent(s string, n int) string {
	if n <= 0 || s == "" {
		return s
	}
	l := strings.Split(s, "\n")
	b := strings.Builder{}
	i := strings.Repeat(" ", n)
	for _, v := range l {
		fmt.Fprintf(&b, "%s%s\n", i, v)
	}
	return b.String()
}
