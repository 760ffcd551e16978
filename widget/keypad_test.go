package widget_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simfoundry/simkit/alert"
	"github.com/simfoundry/simkit/alert/sinks/mock"
	"github.com/simfoundry/simkit/widget"
)

func typeEntry(k *widget.Keypad, text string) {
	for _, r := range text {
		k.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// TestKeypadCommit verifies a typed value is applied on enter.
func TestKeypadCommit(t *testing.T) {
	sink := mock.New()
	q := alert.NewQueue(alert.WithSink(sink))

	value := newNumber(t, 100, 0, 500, 1)
	k := widget.NewKeypad("Heater power", value,
		widget.WithKeypadUnit("watts"),
		widget.WithKeypadQueue(q),
	)
	k.Focus()

	typeEntry(k, "250")
	if k.Entry() != "250" {
		t.Fatalf("expected entry %q, got %q", "250", k.Entry())
	}

	k.Update(keyMsg(tea.KeyEnter))
	if value.Get() != 250 {
		t.Errorf("expected committed value 250, got %v", value.Get())
	}
	if k.Entry() != "" {
		t.Errorf("expected entry cleared after commit, got %q", k.Entry())
	}

	q.Tick()
	if got := sink.Last(); got != "Heater power set to 250 watts" {
		t.Errorf("unexpected announcement %q", got)
	}
}

// TestKeypadRevert verifies esc discards the pending entry.
func TestKeypadRevert(t *testing.T) {
	value := newNumber(t, 100, 0, 500, 1)
	k := widget.NewKeypad("Heater power", value)
	k.Focus()

	typeEntry(k, "42")
	k.Update(keyMsg(tea.KeyEsc))

	if k.Entry() != "" {
		t.Errorf("expected entry cleared after esc, got %q", k.Entry())
	}
	if value.Get() != 100 {
		t.Errorf("expected value untouched, got %v", value.Get())
	}
}

// TestKeypadFiltersNonNumericRunes verifies letters never reach the
// entry.
func TestKeypadFiltersNonNumericRunes(t *testing.T) {
	value := newNumber(t, 0, -10, 10, 1)
	k := widget.NewKeypad("Offset", value)
	k.Focus()

	typeEntry(k, "a1b.c-2")
	if k.Entry() != "1.-2" {
		t.Errorf("expected filtered entry %q, got %q", "1.-2", k.Entry())
	}
}

// TestKeypadOutOfRangeCyclesHints verifies repeated rejections step
// through the hint list instead of repeating the first wording.
func TestKeypadOutOfRangeCyclesHints(t *testing.T) {
	sink := mock.New()
	q := alert.NewQueue(alert.WithSink(sink))

	value := newNumber(t, 100, 0, 500, 1)
	k := widget.NewKeypad("Heater power", value,
		widget.WithKeypadUnit("watts"),
		widget.WithKeypadQueue(q),
	)
	k.Focus()

	typeEntry(k, "9999")
	k.Update(keyMsg(tea.KeyEnter))
	q.Tick()

	typeEntry(k, "9999")
	k.Update(keyMsg(tea.KeyEnter))
	q.Tick()

	typeEntry(k, "9999")
	k.Update(keyMsg(tea.KeyEnter))
	q.Tick()

	if value.Get() != 100 {
		t.Fatalf("expected value untouched, got %v", value.Get())
	}

	want := []string{
		"Value out of range",
		"Enter a value between 0 watts and 500 watts",
		"Enter a value between 0 watts and 500 watts",
	}
	texts := sink.Texts()
	if len(texts) != len(want) {
		t.Fatalf("expected %d announcements, got %v", len(want), texts)
	}
	for i, text := range want {
		if texts[i] != text {
			t.Errorf("announcement %d: expected %q, got %q", i, text, texts[i])
		}
	}
}

// TestKeypadInvalidInput verifies an unparseable entry announces and
// leaves the value alone.
func TestKeypadInvalidInput(t *testing.T) {
	sink := mock.New()
	q := alert.NewQueue(alert.WithSink(sink))

	value := newNumber(t, 100, 0, 500, 1)
	k := widget.NewKeypad("Heater power", value, widget.WithKeypadQueue(q))
	k.Focus()

	typeEntry(k, "1.2.3")
	k.Update(keyMsg(tea.KeyEnter))
	q.Tick()

	if value.Get() != 100 {
		t.Errorf("expected value untouched, got %v", value.Get())
	}
	if got := sink.Last(); got != "Invalid value 1.2.3" {
		t.Errorf("unexpected announcement %q", got)
	}
}

// TestKeypadView verifies the rendered block carries the key grid and
// current value.
func TestKeypadView(t *testing.T) {
	value := newNumber(t, 100, 0, 500, 1)
	k := widget.NewKeypad("Heater power", value, widget.WithKeypadUnit("watts"))

	view := k.View()
	for _, want := range []string{"Heater power", "7 8 9", "current 100 watts"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
