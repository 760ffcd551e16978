package widget_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simfoundry/simkit/alert"
	"github.com/simfoundry/simkit/alert/sinks/mock"
	"github.com/simfoundry/simkit/property"
	"github.com/simfoundry/simkit/widget"
)

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func newNumber(t *testing.T, initial, min, max, step float64) *property.Number {
	t.Helper()
	n, err := property.NewNumber(initial, min, max, step)
	if err != nil {
		t.Fatalf("NewNumber failed: %v", err)
	}
	return n
}

// TestSliderKeyboard verifies arrow keys step the bound value.
func TestSliderKeyboard(t *testing.T) {
	value := newNumber(t, 50, 0, 100, 5)
	s := widget.NewSlider("Temperature", value)
	s.Focus()

	s.Update(keyMsg(tea.KeyRight))
	if value.Get() != 55 {
		t.Errorf("expected 55 after right, got %v", value.Get())
	}

	s.Update(keyMsg(tea.KeyLeft))
	s.Update(keyMsg(tea.KeyLeft))
	if value.Get() != 45 {
		t.Errorf("expected 45 after two lefts, got %v", value.Get())
	}

	s.Update(keyMsg(tea.KeyHome))
	if value.Get() != 0 {
		t.Errorf("expected 0 after home, got %v", value.Get())
	}

	s.Update(keyMsg(tea.KeyEnd))
	if value.Get() != 100 {
		t.Errorf("expected 100 after end, got %v", value.Get())
	}
}

// TestSliderBigStep verifies shift-modified movement uses the larger
// step.
func TestSliderBigStep(t *testing.T) {
	value := newNumber(t, 50, 0, 100, 2)
	s := widget.NewSlider("Power", value)
	s.Focus()

	s.Update(keyMsg(tea.KeyShiftRight))
	if value.Get() != 60 {
		t.Errorf("expected 60 after shift+right, got %v", value.Get())
	}
}

// TestSliderUnfocusedIgnoresKeys verifies a blurred slider does not
// react.
func TestSliderUnfocusedIgnoresKeys(t *testing.T) {
	value := newNumber(t, 50, 0, 100, 5)
	s := widget.NewSlider("Temperature", value)

	s.Update(keyMsg(tea.KeyRight))
	if value.Get() != 50 {
		t.Errorf("expected unchanged value, got %v", value.Get())
	}
}

// TestSliderAnnouncementsCoalesce verifies rapid changes collapse into
// one announcement carrying the latest value.
func TestSliderAnnouncementsCoalesce(t *testing.T) {
	sink := mock.New()
	q := alert.NewQueue(alert.WithSink(sink))

	value := newNumber(t, 50, 0, 100, 5)
	s := widget.NewSlider("Temperature", value,
		widget.WithSliderUnit("degrees"),
		widget.WithSliderQueue(q),
	)
	s.Focus()

	s.Update(keyMsg(tea.KeyRight))
	s.Update(keyMsg(tea.KeyRight))
	s.Update(keyMsg(tea.KeyRight))

	if q.Len() != 1 {
		t.Fatalf("expected 1 pending alert after coalescing, got %d", q.Len())
	}

	q.Tick()
	texts := sink.Texts()
	if len(texts) != 1 {
		t.Fatalf("expected 1 announcement, got %v", texts)
	}
	if texts[0] != "Temperature, 65 degrees" {
		t.Errorf("unexpected announcement %q", texts[0])
	}
}

// TestSliderClampedMoveIsSilent verifies pressing past the end does not
// enqueue a new announcement.
func TestSliderClampedMoveIsSilent(t *testing.T) {
	sink := mock.New()
	q := alert.NewQueue(alert.WithSink(sink))

	value := newNumber(t, 100, 0, 100, 5)
	s := widget.NewSlider("Temperature", value, widget.WithSliderQueue(q))
	s.Focus()

	s.Update(keyMsg(tea.KeyRight))
	if q.Len() != 0 {
		t.Errorf("expected no pending alerts for clamped move, got %d", q.Len())
	}
}

// TestSliderView verifies the rendered line carries label and value.
func TestSliderView(t *testing.T) {
	value := newNumber(t, 1250, 0, 2000, 50)
	s := widget.NewSlider("Heater", value, widget.WithSliderUnit("watts"))

	view := s.View()
	if !strings.Contains(view, "Heater") {
		t.Errorf("view missing label: %q", view)
	}
	if !strings.Contains(view, "1,250 watts") {
		t.Errorf("view missing formatted value: %q", view)
	}
}
