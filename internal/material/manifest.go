package material

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ManifestName is the configuration artifact written next to the textures.
const ManifestName = "material.toml"

// baseConfigLine is present in every manifest.
const baseConfigLine = "tile = true"

// Manifest accumulates configuration lines contributed by role
// classification and channel packing.
type Manifest struct {
	lines []string
}

// NewManifest returns a manifest seeded with the base line.
func NewManifest() *Manifest {
	return &Manifest{lines: []string{baseConfigLine}}
}

// Add appends configuration lines. Roles contribute fixed line sets, so
// duplicates only arise from repeated contributions and are dropped during
// rendering.
func (m *Manifest) Add(lines ...string) {
	m.lines = append(m.lines, lines...)
}

// Render serializes the manifest: lines deduplicated, sorted
// lexicographically for deterministic output, joined with newlines, with a
// trailing newline.
func (m *Manifest) Render() []byte {
	lines := make([]string, len(m.lines))
	copy(lines, m.lines)
	slices.Sort(lines)
	lines = slices.Compact(lines)

	return []byte(strings.Join(lines, "\n") + "\n")
}

// WriteFile writes the rendered manifest into dir. No merging with an
// existing manifest is attempted; the working directory is assumed fresh.
func (m *Manifest) WriteFile(dir string) error {
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, m.Render(), 0o644); err != nil {
		return Wrap(ErrIO, "manifest", "write "+path, err)
	}
	return nil
}
