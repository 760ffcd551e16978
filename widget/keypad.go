package widget

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/simfoundry/simkit/alert"
	"github.com/simfoundry/simkit/property"
)

// KeypadKeyMap holds the non-digit key bindings for a keypad.
type KeypadKeyMap struct {
	Commit key.Binding
	Revert key.Binding
}

// DefaultKeypadKeyMap returns the standard keypad bindings.
func DefaultKeypadKeyMap() KeypadKeyMap {
	return KeypadKeyMap{
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "commit"),
		),
		Revert: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "revert"),
		),
	}
}

// padRows is the rendered key grid.
var padRows = [][]string{
	{"7", "8", "9"},
	{"4", "5", "6"},
	{"1", "2", "3"},
	{"-", "0", "."},
}

// Keypad is a numeric entry widget bound to a ranged number property.
// Digits edit a pending entry; enter commits it to the property, esc
// reverts to the property's current value. Out-of-range entries are
// rejected with an explanatory announcement.
type Keypad struct {
	label string
	unit  string
	value *property.Number
	queue *alert.Queue
	group string

	entry   textinput.Model
	focused bool

	KeyMap KeypadKeyMap

	padStyle   lipgloss.Style
	rangeAlert *alert.Utterance
}

// KeypadOption configures a Keypad.
type KeypadOption func(*Keypad)

// WithKeypadUnit sets the unit suffix used in announcements.
func WithKeypadUnit(unit string) KeypadOption {
	return func(k *Keypad) { k.unit = unit }
}

// WithKeypadQueue wires the alert queue used for announcements.
func WithKeypadQueue(q *alert.Queue) KeypadOption {
	return func(k *Keypad) { k.queue = q }
}

// NewKeypad creates a keypad controlling value.
func NewKeypad(label string, value *property.Number, opts ...KeypadOption) *Keypad {
	entry := textinput.New()
	entry.Prompt = "› "
	entry.CharLimit = 12
	entry.Placeholder = FormatValue(value.Get(), "")

	k := &Keypad{
		label:  label,
		value:  value,
		group:  "keypad-" + uuid.NewString(),
		entry:  entry,
		KeyMap: DefaultKeypadKeyMap(),
		padStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#c8c8c8", Dark: "#3a3a3a"}).
			Padding(0, 1),
	}
	for _, opt := range opts {
		opt(k)
	}

	// One shared alert so repeated rejections step through the hints
	// instead of restarting at the first one.
	k.rangeAlert, _ = alert.NewList([]string{
		"Value out of range",
		"Enter a value between " + FormatValue(value.Min(), k.unit) +
			" and " + FormatValue(value.Max(), k.unit),
	}, alert.WithGroup(k.group+"-err"))
	return k
}

// Value returns the bound property.
func (k *Keypad) Value() *property.Number { return k.value }

// Entry returns the uncommitted entry text.
func (k *Keypad) Entry() string { return k.entry.Value() }

// Focused reports whether the keypad has keyboard focus.
func (k *Keypad) Focused() bool { return k.focused }

// Focus gives the keypad keyboard focus.
func (k *Keypad) Focus() {
	k.focused = true
	k.entry.Focus()
}

// Blur removes keyboard focus and reverts any pending entry.
func (k *Keypad) Blur() {
	k.focused = false
	k.entry.Blur()
	k.entry.SetValue("")
}

// Update handles key messages while focused.
func (k *Keypad) Update(msg tea.Msg) tea.Cmd {
	if !k.focused {
		return nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		k.entry, cmd = k.entry.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(keyMsg, k.KeyMap.Commit):
		k.commit()
		return nil
	case key.Matches(keyMsg, k.KeyMap.Revert):
		k.entry.SetValue("")
		announceNow(k.queue, k.label+" entry cleared")
		return nil
	}

	if !allowedEntryKey(keyMsg) {
		return nil
	}

	var cmd tea.Cmd
	k.entry, cmd = k.entry.Update(msg)
	return cmd
}

// allowedEntryKey filters entry editing to digits, sign, decimal point
// and basic editing keys.
func allowedEntryKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight:
		return true
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r < '0' || r > '9') && r != '.' && r != '-' {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// commit parses and applies the pending entry.
func (k *Keypad) commit() {
	text := strings.TrimSpace(k.entry.Value())
	if text == "" {
		return
	}

	parsed, err := strconv.ParseFloat(text, 64)
	if err != nil {
		announceNow(k.queue, "Invalid value "+text)
		k.entry.SetValue("")
		return
	}

	if !k.value.InRange(parsed) {
		k.rejectOutOfRange()
		k.entry.SetValue("")
		return
	}

	k.value.Set(parsed)
	k.entry.SetValue("")
	k.entry.Placeholder = FormatValue(parsed, "")
	announce(k.queue, k.group, k.label+" set to "+FormatValue(parsed, k.unit))
}

// rejectOutOfRange announces the range hint. Repeated rejections step
// deeper into the hint list, ending on the most explicit wording.
func (k *Keypad) rejectOutOfRange() {
	if k.queue == nil || k.rangeAlert == nil {
		return
	}
	k.queue.EnqueueFront(k.rangeAlert)
}

// View renders the label, entry line and key grid.
func (k *Keypad) View() string {
	label := labelStyle
	if k.focused {
		label = focusedLabelStyle
	}

	var grid strings.Builder
	for i, row := range padRows {
		if i > 0 {
			grid.WriteString("\n")
		}
		grid.WriteString(strings.Join(row, " "))
	}

	current := dimStyle.Render("current " + FormatValue(k.value.Get(), k.unit))
	body := k.entry.View() + "\n" + k.padStyle.Render(grid.String()) + "\n" + current

	return label.Render(k.label) + "\n" + body
}
