// Package preflight runs environment checks before archive processing
// starts: working-directory access and free disk space for extraction.
package preflight
