package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/abrezinsky/pinplanner/internal/logger"
)

func newShortcuts(opened *[]string, openErr error) (*shortcuts, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &shortcuts{
		plannerURL: "http://localhost:8082/",
		log:        logger.NewWithWriter(io.Discard, slog.LevelInfo),
		open: func(url string) error {
			*opened = append(*opened, url)
			return openErr
		},
		out: out,
	}, out
}

func TestShortcuts_OpenPlanner(t *testing.T) {
	var opened []string
	s, out := newShortcuts(&opened, nil)

	if s.handle('o') {
		t.Error("open must not stop the server")
	}
	if len(opened) != 1 || opened[0] != "http://localhost:8082/" {
		t.Errorf("expected planner URL to be opened, got %v", opened)
	}
	if !strings.Contains(out.String(), "Opening planner") {
		t.Errorf("unexpected output %q", out.String())
	}

	s, out = newShortcuts(&opened, fmt.Errorf("no display"))
	s.handle('O')
	if !strings.Contains(out.String(), "no display") {
		t.Errorf("expected browser error in output, got %q", out.String())
	}
}

func TestShortcuts_ToggleHTTPLogging(t *testing.T) {
	var opened []string
	s, _ := newShortcuts(&opened, nil)

	s.handle('h')
	if !s.log.IsHTTPLoggingEnabled() {
		t.Error("expected HTTP logging enabled")
	}
	s.handle('h')
	if s.log.IsHTTPLoggingEnabled() {
		t.Error("expected HTTP logging disabled")
	}
}

func TestShortcuts_CycleLogLevel(t *testing.T) {
	var opened []string
	s, out := newShortcuts(&opened, nil)

	want := []slog.Level{slog.LevelWarn, slog.LevelError, slog.LevelDebug, slog.LevelInfo}
	for _, level := range want {
		s.handle('l')
		if got := s.log.GetLevel(); got != level {
			t.Fatalf("expected %v, got %v", level, got)
		}
	}
	if !strings.Contains(out.String(), "Log level: ") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestShortcuts_QuitAndHelp(t *testing.T) {
	var opened []string
	s, out := newShortcuts(&opened, nil)

	if s.handle('?') {
		t.Error("help must not stop the server")
	}
	if !strings.Contains(out.String(), "Keyboard Shortcuts") {
		t.Errorf("expected help text, got %q", out.String())
	}

	for _, key := range []byte{'q', 'Q', 0x03} {
		if !s.handle(key) {
			t.Errorf("expected %q to stop the server", key)
		}
	}
	if s.handle('z') {
		t.Error("unbound keys must be ignored")
	}
}
