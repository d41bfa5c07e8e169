package material

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"texbake/internal/testsupport"
	"texbake/internal/texture"
)

func TestMaterializeFullTextureSet(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "Tex_2K-PNG")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	testsupport.WriteRGBPNG(t, filepath.Join(dir, "Tex_Color.png"), 8, 8, color.NRGBA{R: 120, G: 80, B: 40})
	testsupport.WriteRGBPNG(t, filepath.Join(dir, "Tex_NormalGL.png"), 8, 8, color.NRGBA{R: 128, G: 128, B: 255})
	testsupport.WriteGrayPNG(t, filepath.Join(dir, "Tex_Roughness.png"), 8, 8, 77)
	testsupport.WriteRGBPNG(t, filepath.Join(dir, "Tex.png"), 2, 2, color.NRGBA{R: 1, G: 2, B: 3})

	result, err := New(nil).Materialize(context.Background(), dir)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}

	if result.Name != "tex" {
		t.Fatalf("material name = %q, want %q", result.Name, "tex")
	}
	if filepath.Base(result.Dir) != "tex" {
		t.Fatalf("final dir = %q", result.Dir)
	}
	if !result.Packed {
		t.Fatal("expected a packed output")
	}

	// Originals must be gone, replaced by canonical outputs.
	for _, name := range []string{"Tex.png", "Tex_Color.png", "Tex_NormalGL.png", "Tex_Roughness.png"} {
		if _, err := os.Stat(filepath.Join(result.Dir, name)); !os.IsNotExist(err) {
			t.Fatalf("original %s should be gone, stat err = %v", name, err)
		}
	}
	for _, name := range []string{"color.png", "normal.png", texture.PackedOutputName, ManifestName} {
		if _, err := os.Stat(filepath.Join(result.Dir, name)); err != nil {
			t.Fatalf("output %s missing: %v", name, err)
		}
	}

	// The normal map was 8-bit and must have been widened to 16-bit RGB.
	enc, err := texture.SniffFileEncoding(filepath.Join(result.Dir, "normal.png"))
	if err != nil {
		t.Fatalf("sniff normal: %v", err)
	}
	if enc != texture.EncodingRGB16 {
		t.Fatalf("normal stored as %v, want rgb16", enc)
	}

	// Roughness-only packing keeps green, zeroes red and blue.
	packed, err := texture.LoadPNG(filepath.Join(result.Dir, texture.PackedOutputName))
	if err != nil {
		t.Fatalf("load packed: %v", err)
	}
	r, g, b, _ := packed.At(3, 3).RGBA()
	if r != 0 || b != 0 {
		t.Fatalf("packed pixel has residual red/blue: r=%d b=%d", r, b)
	}
	if uint8(g>>8) != 77 {
		t.Fatalf("packed green = %d, want 77", g>>8)
	}

	manifest, err := os.ReadFile(filepath.Join(result.Dir, ManifestName))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	want := `normal = "OpenGL"` + "\nrough = 1.0\ntile = true\n"
	if string(manifest) != want {
		t.Fatalf("manifest = %q, want %q", manifest, want)
	}
}

func TestMaterializeMetalAndRoughness(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "Metal013_2K-PNG")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	testsupport.WriteRGBPNG(t, filepath.Join(dir, "Metal013_Color.png"), 8, 8, color.NRGBA{R: 200, G: 200, B: 210})
	testsupport.WriteGrayPNG(t, filepath.Join(dir, "Metal013_Metalness.png"), 8, 8, 240)
	testsupport.WriteGrayPNG(t, filepath.Join(dir, "Metal013_Roughness.png"), 8, 8, 30)
	testsupport.WriteRGBPNG(t, filepath.Join(dir, "Metal013.png"), 2, 2, color.NRGBA{})

	result, err := New(nil).Materialize(context.Background(), dir)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if result.Name != "metal013" {
		t.Fatalf("material name = %q", result.Name)
	}

	packed, err := texture.LoadPNG(filepath.Join(result.Dir, texture.PackedOutputName))
	if err != nil {
		t.Fatalf("load packed: %v", err)
	}
	r, g, b, _ := packed.At(0, 0).RGBA()
	if r != 0 {
		t.Fatalf("red = %d, want 0", r)
	}
	if uint8(g>>8) != 30 || uint8(b>>8) != 240 {
		t.Fatalf("packed channels g=%d b=%d, want g=30 b=240", g>>8, b>>8)
	}

	manifest, err := os.ReadFile(filepath.Join(result.Dir, ManifestName))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	want := "metal = 1.0\nrough = 1.0\ntile = true\n"
	if string(manifest) != want {
		t.Fatalf("manifest = %q, want %q", manifest, want)
	}
}

func TestMaterializeMetalnessWithoutRoughness(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "Bad_2K-PNG")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	testsupport.WriteRGBPNG(t, filepath.Join(dir, "Bad_Color.png"), 4, 4, color.NRGBA{})
	testsupport.WriteGrayPNG(t, filepath.Join(dir, "Bad_Metalness.png"), 4, 4, 128)
	testsupport.WriteRGBPNG(t, filepath.Join(dir, "Bad.png"), 2, 2, color.NRGBA{})

	_, err := New(nil).Materialize(context.Background(), dir)
	if !errors.Is(err, ErrIncompleteMaterial) {
		t.Fatalf("expected ErrIncompleteMaterial, got %v", err)
	}
}

func TestMaterializeDimensionMismatch(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "Odd_2K-PNG")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	testsupport.WriteGrayPNG(t, filepath.Join(dir, "Odd_Metalness.png"), 64, 64, 10)
	testsupport.WriteGrayPNG(t, filepath.Join(dir, "Odd_Roughness.png"), 32, 32, 20)
	testsupport.WriteRGBPNG(t, filepath.Join(dir, "Odd.png"), 2, 2, color.NRGBA{})

	_, err := New(nil).Materialize(context.Background(), dir)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestMaterializeDiscardsUnknownSuffixes(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "Mix_2K-PNG")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	testsupport.WriteRGBPNG(t, filepath.Join(dir, "Mix_Color.png"), 4, 4, color.NRGBA{R: 9})
	testsupport.WriteRGBPNG(t, filepath.Join(dir, "Mix_Emission.png"), 4, 4, color.NRGBA{G: 9})
	testsupport.WriteRGBPNG(t, filepath.Join(dir, "Mix.png"), 2, 2, color.NRGBA{})

	result, err := New(nil).Materialize(context.Background(), dir)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if _, err := os.Stat(filepath.Join(result.Dir, "Mix_Emission.png")); !os.IsNotExist(err) {
		t.Fatalf("unknown-suffix file should be deleted, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(result.Dir, "color.png")); err != nil {
		t.Fatalf("color output missing: %v", err)
	}
}

func TestMaterializeAmbientOcclusionAndDisplacement(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "Rock031_4K-PNG")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	testsupport.WriteGrayPNG(t, filepath.Join(dir, "Rock031_AmbientOcclusion.png"), 4, 4, 180)
	testsupport.WriteGray16PNG(t, filepath.Join(dir, "Rock031_Displacement.png"), 4, 4, 0x7000)
	testsupport.WriteRGBPNG(t, filepath.Join(dir, "Rock031.png"), 2, 2, color.NRGBA{})

	result, err := New(nil).Materialize(context.Background(), dir)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if result.Name != "rock031" {
		t.Fatalf("material name = %q", result.Name)
	}
	if result.Packed {
		t.Fatal("no dependent maps were present; nothing should be packed")
	}

	// 16-bit displacement collapses to 8-bit under the default policy.
	enc, err := texture.SniffFileEncoding(filepath.Join(result.Dir, "depth.png"))
	if err != nil {
		t.Fatalf("sniff depth: %v", err)
	}
	if enc == texture.EncodingGray16 {
		t.Fatal("displacement should no longer be 16-bit")
	}

	manifest, err := os.ReadFile(filepath.Join(result.Dir, ManifestName))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	want := "ao = true\ndepth = 0.01\ndepth_method = 8\ntile = true\n"
	if string(manifest) != want {
		t.Fatalf("manifest = %q, want %q", manifest, want)
	}
}
