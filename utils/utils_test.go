package utils

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPathEmpty(t *testing.T) {
	if got := ExpandPath(""); got != "" {
		t.Errorf("expected empty path unchanged, got %q", got)
	}
}

func TestExpandPathTilde(t *testing.T) {
	got := ExpandPath("~/exports")
	if strings.HasPrefix(got, "~") {
		t.Errorf("expected tilde expanded, got %q", got)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}
}

func TestExpandPathRelative(t *testing.T) {
	got := ExpandPath("exports")
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}
	if !strings.HasSuffix(got, "exports") {
		t.Errorf("expected suffix preserved, got %q", got)
	}
}
