package material

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFinalName(t *testing.T) {
	cases := []struct {
		name         string
		dirName      string
		thumbnailLen int
		want         string
	}{
		// Thumbnail "Metal013.png" is 12 characters; the directory keeps the
		// vendor's resolution and format tags past that point.
		{"vendor archive name", "Metal013_2K-PNG", 12, "metal013"},
		{"resolution 4k", "Rock031_4K-PNG", 11, "rock031"},
		{"resolution 8k", "Rock031_8K-PNG", 11, "rock031"},
		{"multi digit resolution", "Ground054_15K-JPG", 13, "ground054"},
		{"resolution too large to be a tag", "Thing_300K", 10, "thing_300k"},
		{"no resolution tag", "PavingStones070", 15, "pavingstones070"},
		{"png suffix inside truncation", "Wood067.png-extra", 11, "wood067"},
		{"separator trimming", "Bricks__-", 9, "bricks"},
		{"thumbnail longer than name", "Tiles", 40, "tiles"},
		{"underscore without tag", "Metal_Plate", 11, "metal_plate"},
		{"mixed case lowered", "MetalPlate013", 13, "metalplate013"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FinalName(tc.dirName, tc.thumbnailLen); got != tc.want {
				t.Fatalf("FinalName(%q, %d) = %q, want %q", tc.dirName, tc.thumbnailLen, got, tc.want)
			}
		})
	}
}

func TestStripResolutionTag(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Rock_2K", "Rock"},
		{"Rock_15K", "Rock"},
		{"Rock_255K", "Rock"},
		{"Rock_256K", "Rock_256K"},
		{"Rock_K", "Rock_K"},
		{"Rock_2k", "Rock_2k"},
		{"Rock2K", "Rock2K"},
		{"Rock", "Rock"},
	}
	for _, tc := range cases {
		if got := stripResolutionTag(tc.in); got != tc.want {
			t.Fatalf("stripResolutionTag(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFinalizeRenamesDirectory(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "Metal013_2K-PNG")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "color.png"), []byte("c"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	finalDir, err := Finalize(dir, len("Metal013.png"))
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if filepath.Base(finalDir) != "metal013" {
		t.Fatalf("final dir = %q, want basename metal013", finalDir)
	}
	if _, err := os.Stat(filepath.Join(finalDir, "color.png")); err != nil {
		t.Fatalf("contents missing after rename: %v", err)
	}
}

func TestFinalizeNoopWhenNameAlreadyFinal(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "metal013")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	finalDir, err := Finalize(dir, len("metal013.png"))
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if finalDir != dir {
		t.Fatalf("expected no-op, got %q", finalDir)
	}
}
