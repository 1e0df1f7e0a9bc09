package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func decodeRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	dec := json.NewDecoder(buf)
	var out []map[string]any
	for dec.More() {
		var m map[string]any
		if err := dec.Decode(&m); err != nil {
			t.Fatalf("decode: %v\n%s", err, buf.String())
		}
		out = append(out, m)
	}
	return out
}

func TestPrettyJSONHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.With("session", "abc").WithGroup("tick").Debug("replanned", "n", 3, "err", errors.New("boom"))
	log.Info("plain", slog.Group("stats", "food", 2))

	recs := decodeRecords(t, &buf)
	if len(recs) != 2 {
		t.Fatalf("records=%d want=2", len(recs))
	}

	first := recs[0]
	if first["msg"] != "replanned" || first["level"] != "DEBUG" || first["session"] != "abc" {
		t.Fatalf("first=%v", first)
	}
	tick, ok := first["tick"].(map[string]any)
	if !ok || tick["n"] != float64(3) || tick["err"] != "boom" {
		t.Fatalf("tick group=%v", first["tick"])
	}

	stats, ok := recs[1]["stats"].(map[string]any)
	if !ok || stats["food"] != float64(2) {
		t.Fatalf("stats group=%v", recs[1]["stats"])
	}
}

func TestPrettyJSONHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyJSONHandler(&buf, nil))
	log.Debug("hidden")
	log.Warn("shown")
	recs := decodeRecords(t, &buf)
	if len(recs) != 1 || recs[0]["msg"] != "shown" {
		t.Fatalf("records=%v", recs)
	}
}

func TestNew_Formats(t *testing.T) {
	for _, format := range []string{FormatPretty, FormatJSON, FormatText} {
		var buf bytes.Buffer
		log, err := New(&buf, format, slog.LevelInfo)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		log.Info("hello", "k", "v")
		if !strings.Contains(buf.String(), "hello") {
			t.Fatalf("%s: output=%q", format, buf.String())
		}
	}
	if _, err := New(nil, "xml", slog.LevelInfo); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "warn": slog.LevelWarn,
		"warning": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q)=%v,%v want=%v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error")
	}
}
