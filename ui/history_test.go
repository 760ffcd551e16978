package ui

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
)

func seededHistory() historyModel {
	h := newHistoryModel()
	h.setSize(60, 10)
	now := time.Now()
	h.add("Temperature, 30 °C", now.Add(-2*time.Minute))
	h.add("Vent valve on", now.Add(-time.Minute))
	h.add("Pressure high, 210 kPa", now)
	return h
}

func TestHistoryVisibleUnfiltered(t *testing.T) {
	h := seededHistory()
	if got := len(h.visible()); got != 3 {
		t.Errorf("expected 3 entries, got %d", got)
	}
}

func TestHistoryFuzzyFilter(t *testing.T) {
	h := seededHistory()
	h.startFiltering()
	h.filterInput.SetValue("vent")
	h.applyFilter()

	entries := h.visible()
	if len(entries) != 1 {
		t.Fatalf("expected 1 filtered entry, got %d", len(entries))
	}
	if entries[0].text != "Vent valve on" {
		t.Errorf("unexpected entry %q", entries[0].text)
	}
}

func TestHistoryResetFilter(t *testing.T) {
	h := seededHistory()
	h.startFiltering()
	h.filterInput.SetValue("vent")
	h.applyFilter()
	h.resetFilter()

	if got := len(h.visible()); got != 3 {
		t.Errorf("expected all entries after reset, got %d", got)
	}
	if h.filterState != unfiltered {
		t.Errorf("expected unfiltered state, got %v", h.filterState)
	}
}

func TestHistoryEmptyFilterResets(t *testing.T) {
	h := seededHistory()
	h.startFiltering()
	h.filterInput.SetValue("   ")
	h.applyFilter()

	if h.filterState != unfiltered {
		t.Errorf("expected blank filter to reset, got state %v", h.filterState)
	}
}

func TestHistoryPlain(t *testing.T) {
	h := seededHistory()
	plain := h.plain()

	lines := strings.Split(plain, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[1], "\tVent valve on") {
		t.Errorf("unexpected line %q", lines[1])
	}
}

func TestHistoryExport(t *testing.T) {
	h := seededHistory()

	path, err := h.export(t.TempDir())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.HasSuffix(path, ".txt.gz") {
		t.Errorf("unexpected export name %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening export: %v", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("reading gzip header: %v", err)
	}
	content, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("decompressing export: %v", err)
	}

	if !strings.Contains(string(content), "Pressure high, 210 kPa") {
		t.Errorf("export missing entry:\n%s", content)
	}
}

func TestHistoryExportFiltered(t *testing.T) {
	h := seededHistory()
	h.startFiltering()
	h.filterInput.SetValue("pressure")
	h.applyFilter()

	path, err := h.export(t.TempDir())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening export: %v", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("reading gzip header: %v", err)
	}
	content, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("decompressing export: %v", err)
	}

	if strings.Contains(string(content), "Vent valve on") {
		t.Errorf("filtered export contains excluded entry:\n%s", content)
	}
	if !strings.Contains(string(content), "Pressure high") {
		t.Errorf("filtered export missing matching entry:\n%s", content)
	}
}
