// Package widget provides interactive terminal widgets for educational
// simulations: slider, keypad, gauge and button. Each widget binds to an
// observable property and announces its changes through an alert queue,
// using a per-widget group key so rapid repeated changes collapse into
// the latest pending announcement.
package widget

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/simfoundry/simkit/alert"
)

// AnnounceDelay is the residency delay given to value-change
// announcements. Combined with group eviction it coalesces a burst of
// keypresses into one spoken update.
const AnnounceDelay = 250 * time.Millisecond

var valuePrinter = message.NewPrinter(language.English)

// FormatValue renders a numeric value with digit grouping and an
// optional unit, e.g. "1,250 watts".
func FormatValue(value float64, unit string) string {
	text := valuePrinter.Sprintf("%v", number(value))
	if unit == "" {
		return text
	}
	return text + " " + unit
}

// number trims float noise so announcements read naturally: integral
// values lose their decimal point entirely.
func number(v float64) interface{} {
	if v == float64(int64(v)) {
		return int64(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// announce enqueues a grouped, delay-gated value announcement. A nil
// queue turns announcements off, which keeps widgets usable in tests
// and in non-accessible contexts.
func announce(q *alert.Queue, group, text string) {
	if q == nil {
		return
	}
	u, err := alert.New(text, alert.WithGroup(group), alert.WithDelay(AnnounceDelay))
	if err != nil {
		return
	}
	q.EnqueueBack(u)
}

// announceNow enqueues an ungrouped, undelayed announcement for
// discrete events like button presses.
func announceNow(q *alert.Queue, text string) {
	if q == nil {
		return
	}
	q.EnqueueText(text)
}

// Shared styles.
var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}).
			Bold(true)

	focusedLabelStyle = labelStyle.
				Foreground(lipgloss.AdaptiveColor{Light: "#8b2def", Dark: "#ad58fc"})

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9b9b9b", Dark: "#5c5c5c"})
)

// padLine left-pads or truncates a rendered line to width cells.
func padLine(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
