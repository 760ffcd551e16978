package widget

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"github.com/simfoundry/simkit/alert"
	"github.com/simfoundry/simkit/property"
)

// SliderKeyMap holds the key bindings for a slider.
type SliderKeyMap struct {
	Decrease    key.Binding
	Increase    key.Binding
	BigDecrease key.Binding
	BigIncrease key.Binding
	Minimum     key.Binding
	Maximum     key.Binding
}

// DefaultSliderKeyMap returns the standard slider bindings.
func DefaultSliderKeyMap() SliderKeyMap {
	return SliderKeyMap{
		Decrease: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "decrease"),
		),
		Increase: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "increase"),
		),
		BigDecrease: key.NewBinding(
			key.WithKeys("shift+left", "H", "pgdown"),
			key.WithHelp("shift+←", "decrease fast"),
		),
		BigIncrease: key.NewBinding(
			key.WithKeys("shift+right", "L", "pgup"),
			key.WithHelp("shift+→", "increase fast"),
		),
		Minimum: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "minimum"),
		),
		Maximum: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "maximum"),
		),
	}
}

// bigStepFactor scales the step for shift-modified movement.
const bigStepFactor = 5

// Slider is a horizontal value control bound to a ranged number
// property. Arrow keys move the thumb by one step; the bound property
// may also be changed externally and the slider follows.
type Slider struct {
	label string
	unit  string
	value *property.Number
	queue *alert.Queue
	group string

	width   int
	focused bool

	KeyMap SliderKeyMap

	trackStyle lipgloss.Style
	thumbStyle lipgloss.Style
}

// SliderOption configures a Slider.
type SliderOption func(*Slider)

// WithSliderUnit sets the unit suffix used in views and announcements.
func WithSliderUnit(unit string) SliderOption {
	return func(s *Slider) { s.unit = unit }
}

// WithSliderWidth sets the track width in cells.
func WithSliderWidth(width int) SliderOption {
	return func(s *Slider) {
		if width >= 3 {
			s.width = width
		}
	}
}

// WithSliderQueue wires the alert queue used for value announcements.
func WithSliderQueue(q *alert.Queue) SliderOption {
	return func(s *Slider) { s.queue = q }
}

// NewSlider creates a slider controlling value.
func NewSlider(label string, value *property.Number, opts ...SliderOption) *Slider {
	s := &Slider{
		label:  label,
		value:  value,
		group:  "slider-" + uuid.NewString(),
		width:  24,
		KeyMap: DefaultSliderKeyMap(),
		trackStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#c8c8c8", Dark: "#3a3a3a"}),
		thumbStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#8b2def", Dark: "#ad58fc"}).
			Bold(true),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Value returns the bound property.
func (s *Slider) Value() *property.Number { return s.value }

// Label returns the slider's label.
func (s *Slider) Label() string { return s.label }

// Focused reports whether the slider has keyboard focus.
func (s *Slider) Focused() bool { return s.focused }

// Focus gives the slider keyboard focus.
func (s *Slider) Focus() { s.focused = true }

// Blur removes keyboard focus.
func (s *Slider) Blur() { s.focused = false }

// Update handles key messages while focused.
func (s *Slider) Update(msg tea.Msg) tea.Cmd {
	if !s.focused {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	old := s.value.Get()
	switch {
	case key.Matches(keyMsg, s.KeyMap.Decrease):
		s.value.Decrement()
	case key.Matches(keyMsg, s.KeyMap.Increase):
		s.value.Increment()
	case key.Matches(keyMsg, s.KeyMap.BigDecrease):
		s.value.Set(s.value.Get() - bigStepFactor*s.value.Step())
	case key.Matches(keyMsg, s.KeyMap.BigIncrease):
		s.value.Set(s.value.Get() + bigStepFactor*s.value.Step())
	case key.Matches(keyMsg, s.KeyMap.Minimum):
		s.value.Set(s.value.Min())
	case key.Matches(keyMsg, s.KeyMap.Maximum):
		s.value.Set(s.value.Max())
	default:
		return nil
	}

	if s.value.Get() != old {
		announce(s.queue, s.group, s.label+", "+FormatValue(s.value.Get(), s.unit))
	}
	return nil
}

// View renders the label, track and current value.
func (s *Slider) View() string {
	label := labelStyle
	if s.focused {
		label = focusedLabelStyle
	}

	// Thumb position across the track.
	pos := int(s.value.Normalized() * float64(s.width-1))
	var track strings.Builder
	for i := 0; i < s.width; i++ {
		if i == pos {
			track.WriteString(s.thumbStyle.Render("┃"))
		} else {
			track.WriteString(s.trackStyle.Render("─"))
		}
	}

	value := FormatValue(s.value.Get(), s.unit)
	name := runewidth.FillRight(s.label, 14)

	return label.Render(name) + " " + track.String() + " " + dimStyle.Render(value)
}
