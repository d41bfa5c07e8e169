// Package testsupport provides helpers shared by package tests: PNG fixture
// writers and ready-made configs pointed at temporary directories.
package testsupport

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
)

// WriteGrayPNG writes a w x h 8-bit grayscale PNG filled with value.
func WriteGrayPNG(t *testing.T, path string, w, h int, value uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = value
	}
	writePNG(t, path, img)
}

// WriteGray16PNG writes a w x h 16-bit grayscale PNG filled with value.
func WriteGray16PNG(t *testing.T, path string, w, h int, value uint16) {
	t.Helper()
	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray16(x, y, color.Gray16{Y: value})
		}
	}
	writePNG(t, path, img)
}

// WriteRGBPNG writes an opaque w x h PNG filled with c. Opaque images are
// stored as 8-bit truecolor without alpha.
func WriteRGBPNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	c.A = 0xff
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	writePNG(t, path, img)
}

// WriteRGBAPNG writes a w x h PNG filled with c, keeping the alpha channel
// by making one corner pixel translucent when c is opaque.
func WriteRGBAPNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	if c.A == 0xff {
		corner := c
		corner.A = 0xfe
		img.SetNRGBA(0, 0, corner)
	}
	writePNG(t, path, img)
}

// WriteRGB16PNG writes an opaque w x h 16-bit PNG filled with the given
// channel values. Opaque images are stored as 16-bit truecolor.
func WriteRGB16PNG(t *testing.T, path string, w, h int, r, g, b uint16) {
	t.Helper()
	img := image.NewRGBA64(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA64(x, y, color.RGBA64{R: r, G: g, B: b, A: 0xffff})
		}
	}
	writePNG(t, path, img)
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close %s: %v", path, err)
	}
}
