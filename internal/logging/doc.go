// Package logging configures slog output for texbake.
//
// The package provides a human-oriented console handler, a JSON handler for
// machine consumption, attribute helpers shared across packages, and a no-op
// logger used by tests and optional collaborators.
package logging
