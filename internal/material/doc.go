// Package material turns one extracted texture directory into a finished
// PBR material: it resolves the shared filename prefix, classifies each file
// into a channel role, normalizes color encodings, packs dependent maps,
// writes the material.toml manifest, and renames the directory to its final
// form.
//
// Failures are tagged with the sentinel markers in errors.go so callers can
// classify them without string matching.
package material
