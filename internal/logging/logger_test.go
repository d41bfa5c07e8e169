package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestPrettyHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	logger := slog.New(newPrettyHandler(&buf, lvl))

	logger = NewComponentLogger(logger, "materializer")
	logger.Info("material ready", String("material", "metal-plate-013"), Int("files", 4))

	line := buf.String()
	if !strings.Contains(line, "INFO materializer: material ready") {
		t.Fatalf("unexpected log line: %q", line)
	}
	if !strings.Contains(line, "material=metal-plate-013") {
		t.Fatalf("missing material attr: %q", line)
	}
	if !strings.Contains(line, "files=4") {
		t.Fatalf("missing files attr: %q", line)
	}
}

func TestPrettyHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, lvl))

	logger.Warn("encoding left unchanged", String("detail", "palette not supported"))

	if !strings.Contains(buf.String(), `detail="palette not supported"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestPrettyHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newPrettyHandler(&buf, lvl))

	logger.Info("should be dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info record below warn level to be dropped, got %q", buf.String())
	}
}

func TestWithContextAddsRunAndArchiveFields(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, lvl))

	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithArchive(ctx, "/work/Metal013_2K.zip")

	WithContext(ctx, logger).Info("processing archive")

	line := buf.String()
	if !strings.Contains(line, "run_id=run-1") {
		t.Fatalf("missing run id: %q", line)
	}
	if !strings.Contains(line, "archive=/work/Metal013_2K.zip") {
		t.Fatalf("missing archive: %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	// Must not panic, and the handler must report disabled.
	logger.Info("ignored")
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("noop logger should be disabled at all levels")
	}
}
