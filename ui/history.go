package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
	"github.com/sahilm/fuzzy"
)

// historyEntry is one announcement retained for review.
type historyEntry struct {
	text string
	at   time.Time
}

// filterState tracks the history pane's filter lifecycle.
type filterState int

const (
	unfiltered filterState = iota
	filtering
	filterApplied
)

// historyModel is the scrollable pane of past announcements. Sighted
// users get the review surface a screen reader user gets from their
// reader's speech history.
type historyModel struct {
	entries []historyEntry

	viewport    viewport.Model
	filterInput textinput.Model
	filterState filterState

	width  int
	height int
}

func newHistoryModel() historyModel {
	fi := textinput.New()
	fi.Prompt = "filter: "
	fi.CharLimit = 64

	vp := viewport.New(0, 0)

	return historyModel{
		viewport:    vp,
		filterInput: fi,
	}
}

func (h *historyModel) setSize(width, height int) {
	h.width = width
	h.height = height
	h.viewport.Width = width
	h.viewport.Height = height
	h.refresh()
}

// add appends an announcement and scrolls to the bottom so the newest
// entry is visible.
func (h *historyModel) add(text string, at time.Time) {
	h.entries = append(h.entries, historyEntry{text: text, at: at})
	h.refresh()
	h.viewport.GotoBottom()
}

func (h *historyModel) startFiltering() {
	h.filterState = filtering
	h.filterInput.SetValue("")
	h.filterInput.Focus()
	h.refresh()
}

func (h *historyModel) applyFilter() {
	h.filterInput.Blur()
	if strings.TrimSpace(h.filterInput.Value()) == "" {
		h.resetFilter()
		return
	}
	h.filterState = filterApplied
	h.refresh()
}

func (h *historyModel) resetFilter() {
	h.filterState = unfiltered
	h.filterInput.Blur()
	h.filterInput.SetValue("")
	h.refresh()
}

// update handles messages while the filter input is active.
func (h *historyModel) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if h.filterState == filtering {
		h.filterInput, cmd = h.filterInput.Update(msg)
		h.refresh()
		return cmd
	}
	h.viewport, cmd = h.viewport.Update(msg)
	return cmd
}

// visible returns the entries passing the current filter, newest last.
func (h *historyModel) visible() []historyEntry {
	pattern := strings.TrimSpace(h.filterInput.Value())
	if h.filterState == unfiltered || pattern == "" {
		return h.entries
	}

	texts := make([]string, len(h.entries))
	for i, e := range h.entries {
		texts[i] = e.text
	}

	matches := fuzzy.Find(pattern, texts)
	filtered := make([]historyEntry, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, h.entries[m.Index])
	}
	return filtered
}

func (h *historyModel) refresh() {
	entries := h.visible()
	if len(entries) == 0 {
		h.viewport.SetContent(subtleStyle.Render("no announcements yet"))
		return
	}

	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(historyTimeStyle.Render(humanize.Time(e.at)))
		b.WriteString("  ")
		b.WriteString(e.text)
	}
	h.viewport.SetContent(b.String())
}

// plain returns the filtered history as plain text, one entry per line,
// for the clipboard and for exports.
func (h *historyModel) plain() string {
	entries := h.visible()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.at.Format(time.RFC3339) + "\t" + e.text
	}
	return strings.Join(lines, "\n")
}

// export writes the filtered history, gzip-compressed, into dir and
// returns the file path. An empty dir falls back to the system temp
// directory.
func (h *historyModel) export(dir string) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	name := fmt.Sprintf("simkit-alerts-%s.txt.gz", time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(h.plain() + "\n")); err != nil {
		zw.Close() //nolint:errcheck
		return "", fmt.Errorf("writing export: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("closing export: %w", err)
	}
	return path, nil
}

func (h *historyModel) view() string {
	title := historyTitleStyle.Render("History")
	if h.filterState == filtering {
		return title + "\n" + h.filterInput.View() + "\n" + h.viewport.View()
	}
	if h.filterState == filterApplied {
		title += historyTimeStyle.Render("  (filtered: " + h.filterInput.Value() + ")")
	}
	return title + "\n" + h.viewport.View()
}
