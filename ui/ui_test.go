package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simfoundry/simkit/alert"
)

func testModel(t *testing.T) model {
	t.Helper()
	m := newModel(DefaultConfig())
	if m.fatalErr != nil {
		t.Fatalf("newModel failed: %v", m.fatalErr)
	}
	m.setSize(80, 40)
	return m
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned unexpected model type %T", next)
	}
	return out
}

func TestDerivedPressure(t *testing.T) {
	tests := []struct {
		name        string
		temperature float64
		power       float64
		vented      bool
		want        float64
	}{
		{"cold and off", 0, 0, false, 20},
		{"defaults", 20, 500, false, 70},
		{"maxed", 100, 2000, false, 250},
		{"maxed vented", 100, 2000, true, 125},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := derivedPressure(tt.temperature, tt.power, tt.vented); got != tt.want {
				t.Errorf("expected %v kPa, got %v", tt.want, got)
			}
		})
	}
}

func TestLabPressureFollowsInputs(t *testing.T) {
	l, err := newLab()
	if err != nil {
		t.Fatalf("newLab failed: %v", err)
	}

	l.temperature.Set(100)
	l.heaterPower.Set(2000)
	if got := l.pressure.Get(); got != 250 {
		t.Errorf("expected pressure 250, got %v", got)
	}

	l.vent.Set(true)
	if got := l.pressure.Get(); got != 125 {
		t.Errorf("expected vented pressure 125, got %v", got)
	}
}

func TestAnnouncementReachesLiveRegionAndHistory(t *testing.T) {
	m := testModel(t)

	// The slider has initial focus; step it once.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.queue.Len() != 1 {
		t.Fatalf("expected 1 pending alert, got %d", m.queue.Len())
	}

	m = update(t, m, alert.TickMsg{At: time.Now()})
	if m.liveText != "Temperature, 21 °C" {
		t.Errorf("unexpected live region text %q", m.liveText)
	}
	if got := len(m.history.entries); got != 1 {
		t.Errorf("expected 1 history entry, got %d", got)
	}
}

func TestFocusCycling(t *testing.T) {
	m := testModel(t)

	if !m.temperature.Focused() {
		t.Fatal("expected slider focused initially")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.heater.Focused() || m.temperature.Focused() {
		t.Error("expected keypad focused after tab")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if !m.temperature.Focused() {
		t.Error("expected slider focused after shift+tab")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if !m.vent.Focused() {
		t.Error("expected button focused after wrapping backwards")
	}
}

func TestMuteToggle(t *testing.T) {
	m := testModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if !m.queue.Muted() {
		t.Fatal("expected queue muted after m")
	}
	if m.status != "alerts muted" {
		t.Errorf("unexpected status %q", m.status)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if m.queue.Muted() {
		t.Fatal("expected queue unmuted after second m")
	}
	if m.queue.Len() != 1 {
		t.Errorf("expected unmute confirmation alert, got %d pending", m.queue.Len())
	}
}

func TestMutedTickConsumesSilently(t *testing.T) {
	m := testModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, alert.TickMsg{At: time.Now()})

	if m.liveText != "" {
		t.Errorf("expected empty live region while muted, got %q", m.liveText)
	}
	if m.queue.Len() != 0 {
		t.Errorf("expected alert consumed while muted, got %d pending", m.queue.Len())
	}
}

// Opening the vent halves the pressure, which crosses into the low
// zone, so the gauge's alert lands in the queue ahead of the button's.
func TestVentButtonAnnounces(t *testing.T) {
	m := testModel(t)

	// Focus the vent button and press it.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.lab.vent.Get() {
		t.Fatal("expected vent open after press")
	}
	if m.queue.Len() != 2 {
		t.Fatalf("expected gauge and button alerts pending, got %d", m.queue.Len())
	}

	m = update(t, m, alert.TickMsg{At: time.Now()})
	if m.liveText != "Pressure low, 35 kPa" {
		t.Errorf("unexpected first announcement %q", m.liveText)
	}

	m = update(t, m, alert.TickMsg{At: time.Now()})
	if m.liveText != "Vent valve on" {
		t.Errorf("unexpected second announcement %q", m.liveText)
	}
	if got := len(m.history.entries); got != 2 {
		t.Errorf("expected 2 history entries, got %d", got)
	}
}

func TestViewContainsSurfaces(t *testing.T) {
	m := testModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, alert.TickMsg{At: time.Now()})

	view := m.View()
	for _, want := range []string{"Thermal Lab", "Temperature", "Heater power", "Pressure", "Vent valve", "History", "Temperature, 21 °C"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMutedBadgeInView(t *testing.T) {
	m := testModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})

	if !strings.Contains(m.View(), "[muted]") {
		t.Error("expected muted badge in view")
	}
}

func TestFilterModeCapturesKeys(t *testing.T) {
	m := testModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if m.history.filterState != filtering {
		t.Fatal("expected filtering state after /")
	}

	// Keys go to the filter input, not the slider.
	before := m.lab.temperature.Get()
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	if m.lab.temperature.Get() != before {
		t.Error("expected slider untouched while filtering")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.history.filterState != unfiltered {
		t.Error("expected filter reset after esc")
	}
}

func TestHelpOverlayToggle(t *testing.T) {
	m := testModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !m.showHelp {
		t.Fatal("expected help overlay after ?")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp {
		t.Error("expected help overlay closed after esc")
	}
}
