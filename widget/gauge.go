package widget

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/google/uuid"

	"github.com/simfoundry/simkit/alert"
	"github.com/simfoundry/simkit/property"
)

// Zone identifies which band of its range a gauge's value is in.
type Zone int

const (
	// ZoneLow is below the low threshold.
	ZoneLow Zone = iota
	// ZoneNormal is between the thresholds.
	ZoneNormal
	// ZoneHigh is above the high threshold.
	ZoneHigh
)

// String returns the spoken name of the zone.
func (z Zone) String() string {
	switch z {
	case ZoneLow:
		return "low"
	case ZoneNormal:
		return "normal"
	case ZoneHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Gauge is a read-only bar display bound to a ranged number property.
// It follows the property wherever changes come from and announces only
// zone transitions, not every value change — a gauge that narrated
// continuously would drown out the controls that caused the change.
type Gauge struct {
	label string
	unit  string
	value *property.Number
	queue *alert.Queue
	group string

	bar  progress.Model
	zone Zone

	// Thresholds as fractions of the range, in [0, 1].
	lowCut  float64
	highCut float64

	unlink func()
}

// GaugeOption configures a Gauge.
type GaugeOption func(*Gauge)

// WithGaugeUnit sets the unit suffix used in views and announcements.
func WithGaugeUnit(unit string) GaugeOption {
	return func(g *Gauge) { g.unit = unit }
}

// WithGaugeWidth sets the bar width in cells.
func WithGaugeWidth(width int) GaugeOption {
	return func(g *Gauge) { g.bar.Width = width }
}

// WithGaugeQueue wires the alert queue used for zone announcements.
func WithGaugeQueue(q *alert.Queue) GaugeOption {
	return func(g *Gauge) { g.queue = q }
}

// WithGaugeZones sets the low and high cutoffs as fractions of the
// range. Out-of-order or out-of-bounds cutoffs keep the defaults.
func WithGaugeZones(lowCut, highCut float64) GaugeOption {
	return func(g *Gauge) {
		if lowCut >= 0 && lowCut < highCut && highCut <= 1 {
			g.lowCut = lowCut
			g.highCut = highCut
		}
	}
}

// NewGauge creates a gauge observing value. The gauge registers a
// property listener; call Close when discarding the gauge before the
// property.
func NewGauge(label string, value *property.Number, opts ...GaugeOption) *Gauge {
	g := &Gauge{
		label:   label,
		value:   value,
		group:   "gauge-" + uuid.NewString(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		lowCut:  0.25,
		highCut: 0.75,
	}
	g.bar.Width = 24
	for _, opt := range opts {
		opt(g)
	}

	g.zone = g.zoneFor(value.Normalized())
	g.unlink = value.Listen(func(old, new float64) {
		g.onChange()
	})
	return g
}

// Close unregisters the gauge's property listener.
func (g *Gauge) Close() {
	if g.unlink != nil {
		g.unlink()
		g.unlink = nil
	}
}

// Zone returns the zone the value currently falls in.
func (g *Gauge) Zone() Zone { return g.zone }

// Value returns the bound property.
func (g *Gauge) Value() *property.Number { return g.value }

func (g *Gauge) zoneFor(normalized float64) Zone {
	switch {
	case normalized < g.lowCut:
		return ZoneLow
	case normalized > g.highCut:
		return ZoneHigh
	default:
		return ZoneNormal
	}
}

func (g *Gauge) onChange() {
	zone := g.zoneFor(g.value.Normalized())
	if zone == g.zone {
		return
	}
	g.zone = zone
	announce(g.queue, g.group, g.label+" "+zone.String()+", "+FormatValue(g.value.Get(), g.unit))
}

// View renders the label, bar and current value.
func (g *Gauge) View() string {
	value := FormatValue(g.value.Get(), g.unit)
	zone := dimStyle.Render("(" + g.zone.String() + ")")
	name := labelStyle.Render(padLine(g.label, 14))
	return name + " " + g.bar.ViewAs(g.value.Normalized()) + " " + dimStyle.Render(value) + " " + zone
}
