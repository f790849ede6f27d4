package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func installForTest(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	cfg.process()
	install(&buf, &cfg)
	t.Cleanup(func() { InitWriter(slog.LevelInfo, nil) })
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	cfg := NewConfig()
	cfg.LogLevel = "warn"
	buf := installForTest(t, cfg)

	Infof("hidden %d", 1)
	Warnf("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info message leaked: %s", out)
	}
	if !strings.Contains(out, "shown 2") {
		t.Fatalf("warn message missing: %s", out)
	}
}

func TestTagFiltering(t *testing.T) {
	cfg := NewConfig()
	cfg.LogLevel = "debug"
	cfg.DisabledTags = []string{"Event"}
	buf := installForTest(t, cfg)

	DebugTagf("event", "noisy")
	DebugTagf("marker", "useful")

	out := buf.String()
	if strings.Contains(out, "noisy") {
		t.Fatalf("disabled tag leaked: %s", out)
	}
	if !strings.Contains(out, "useful") || !strings.Contains(out, "tag=marker") {
		t.Fatalf("tagged message missing: %s", out)
	}
}

func TestEnabledTagsDropUntagged(t *testing.T) {
	cfg := NewConfig()
	cfg.LogLevel = "debug"
	cfg.EnabledTags = []string{"format"}
	buf := installForTest(t, cfg)

	Debugf("untagged")
	DebugTagf("format", "kept")

	out := buf.String()
	if strings.Contains(out, "untagged") || !strings.Contains(out, "kept") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestPackageFiltering(t *testing.T) {
	cfg := NewConfig()
	cfg.DisabledPackages = []string{"logger"}
	buf := installForTest(t, cfg)

	Infof("from the logger package")
	if buf.Len() != 0 {
		t.Fatalf("disabled package leaked: %s", buf.String())
	}
}

func TestSourceIsCaller(t *testing.T) {
	cfg := NewConfig()
	buf := installForTest(t, cfg)
	Infof("where")
	if !strings.Contains(buf.String(), "logger_test.go") {
		t.Fatalf("source does not point at the caller: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	if l, ok := ParseLevel("WARNING"); !ok || l != slog.LevelWarn {
		t.Fatalf("ParseLevel(WARNING) = %v %v", l, ok)
	}
	if _, ok := ParseLevel("verbose"); ok {
		t.Fatal("unknown level accepted")
	}
}
