// Package texture handles per-file texture work: mapping filename suffixes
// to material channel roles, inspecting and converting PNG pixel encodings,
// and fusing metalness/roughness maps into the packed combo texture the
// rendering engine expects.
package texture
