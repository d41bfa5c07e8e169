// Package config loads and validates the texbake configuration file.
//
// Configuration lives at ~/.config/texbake/config.toml by default, with a
// project-local texbake.toml honored as a fallback. Loading applies defaults,
// expands ~ in path values, and validates the result before anything else in
// the program runs.
package config
