// Package pipeline drives archive processing end to end: it extracts each
// texture archive, materializes the resulting directory, and records the
// outcome. A file lock on the working directory keeps concurrent invocations
// from stepping on each other.
package pipeline
