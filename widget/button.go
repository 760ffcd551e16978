package widget

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simfoundry/simkit/alert"
	"github.com/simfoundry/simkit/property"
)

// ButtonKeyMap holds the key bindings for a button.
type ButtonKeyMap struct {
	Press key.Binding
}

// DefaultButtonKeyMap returns the standard button binding.
func DefaultButtonKeyMap() ButtonKeyMap {
	return ButtonKeyMap{
		Press: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "press"),
		),
	}
}

// Button is a momentary or toggle control. Momentary buttons fire their
// callback on every press; toggle buttons flip a bound boolean property
// and announce the new state.
type Button struct {
	label string
	queue *alert.Queue

	toggle  *property.Property[bool]
	onPress func()
	focused bool

	KeyMap ButtonKeyMap

	style        lipgloss.Style
	focusedStyle lipgloss.Style
	activeStyle  lipgloss.Style
}

// ButtonOption configures a Button.
type ButtonOption func(*Button)

// WithToggle makes the button flip state, bound to the given property.
func WithToggle(state *property.Property[bool]) ButtonOption {
	return func(b *Button) { b.toggle = state }
}

// WithOnPress sets a callback fired on every press, after any toggle
// state change.
func WithOnPress(fn func()) ButtonOption {
	return func(b *Button) { b.onPress = fn }
}

// WithButtonQueue wires the alert queue used for press announcements.
func WithButtonQueue(q *alert.Queue) ButtonOption {
	return func(b *Button) { b.queue = q }
}

// NewButton creates a button.
func NewButton(label string, opts ...ButtonOption) *Button {
	base := lipgloss.NewStyle().
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#c8c8c8", Dark: "#3a3a3a"})

	b := &Button{
		label:  label,
		KeyMap: DefaultButtonKeyMap(),
		style:  base,
		focusedStyle: base.
			BorderForeground(lipgloss.AdaptiveColor{Light: "#8b2def", Dark: "#ad58fc"}).
			Bold(true),
		activeStyle: base.
			Foreground(lipgloss.AdaptiveColor{Light: "#8b2def", Dark: "#ad58fc"}).
			Bold(true),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Label returns the button's label.
func (b *Button) Label() string { return b.label }

// On reports toggle state; momentary buttons are never on.
func (b *Button) On() bool {
	return b.toggle != nil && b.toggle.Get()
}

// Focused reports whether the button has keyboard focus.
func (b *Button) Focused() bool { return b.focused }

// Focus gives the button keyboard focus.
func (b *Button) Focus() { b.focused = true }

// Blur removes keyboard focus.
func (b *Button) Blur() { b.focused = false }

// Update handles key messages while focused.
func (b *Button) Update(msg tea.Msg) tea.Cmd {
	if !b.focused {
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !key.Matches(keyMsg, b.KeyMap.Press) {
		return nil
	}
	b.Press()
	return nil
}

// Press activates the button programmatically.
func (b *Button) Press() {
	if b.toggle != nil {
		b.toggle.Set(!b.toggle.Get())
		state := "off"
		if b.toggle.Get() {
			state = "on"
		}
		announceNow(b.queue, b.label+" "+state)
	} else {
		announceNow(b.queue, b.label+" pressed")
	}

	if b.onPress != nil {
		b.onPress()
	}
}

// View renders the button.
func (b *Button) View() string {
	style := b.style
	switch {
	case b.On():
		style = b.activeStyle
	case b.focused:
		style = b.focusedStyle
	}

	label := b.label
	if b.toggle != nil {
		if b.On() {
			label += " ●"
		} else {
			label += " ○"
		}
	}
	return style.Render(label)
}
