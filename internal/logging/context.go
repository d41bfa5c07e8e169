package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldArchive is the standardized structured logging key for the source archive path.
	FieldArchive = "archive"
	// FieldMaterial is the standardized structured logging key for the materialized directory name.
	FieldMaterial = "material"
	// FieldRunID is the standardized structured logging key for the per-run identifier.
	FieldRunID = "run_id"
)

type contextKey string

const (
	runIDKey   contextKey = "texbake.run_id"
	archiveKey contextKey = "texbake.archive"
)

// WithRunID stores the run identifier on the context so downstream loggers
// can annotate records with it.
func WithRunID(ctx context.Context, runID string) context.Context {
	if runID == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext extracts a run identifier previously stored with WithRunID.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// WithArchive stores the archive path being processed on the context.
func WithArchive(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, archiveKey, path)
}

// ArchiveFromContext extracts an archive path previously stored with WithArchive.
func ArchiveFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	path, ok := ctx.Value(archiveKey).(string)
	return path, ok && path != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if path, ok := ArchiveFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldArchive, path))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
