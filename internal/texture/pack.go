package texture

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"
)

// ErrSizeMismatch reports paired packing inputs with differing dimensions.
var ErrSizeMismatch = errors.New("size mismatch")

// PackedOutputName is the filename of the combined metalness/roughness map.
// The engine reads roughness from the green channel and metalness from the
// blue channel; red is unused.
const PackedOutputName = "combo_0rm.png"

// PackRoughness keeps the green channel of a roughness map and zeroes the
// red and blue channels. The result is opaque, so it is stored as a
// 3-channel 8-bit image.
func PackRoughness(rough image.Image) *image.NRGBA {
	src := toOpaqueNRGBA(rough)
	parallelRows(src.Rect.Dy(), func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+src.Rect.Dx()*4]
			for i := 0; i < len(row); i += 4 {
				row[i] = 0
				row[i+2] = 0
			}
		}
	})
	return src
}

// PackMetalRough synthesizes the combined map from single-channel inputs:
// red is zero, green carries roughness, blue carries metalness. Both inputs
// must share the same dimensions.
func PackMetalRough(metal, rough image.Image) (*image.NRGBA, error) {
	mw, mh := metal.Bounds().Dx(), metal.Bounds().Dy()
	rw, rh := rough.Bounds().Dx(), rough.Bounds().Dy()
	if mw != rw || mh != rh {
		return nil, fmt.Errorf("%w: metalness %dx%d, roughness %dx%d", ErrSizeMismatch, mw, mh, rw, rh)
	}

	metalGray := toGray8(metal)
	roughGray := toGray8(rough)

	dst := image.NewNRGBA(image.Rect(0, 0, mw, mh))
	parallelRows(mh, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < mw; x++ {
				i := y*dst.Stride + x*4
				dst.Pix[i] = 0
				dst.Pix[i+1] = roughGray.Pix[y*roughGray.Stride+x]
				dst.Pix[i+2] = metalGray.Pix[y*metalGray.Stride+x]
				dst.Pix[i+3] = 0xff
			}
		}
	})
	return dst, nil
}

// parallelRows splits [0, height) into contiguous bands and runs fn on each
// band concurrently. Bands do not overlap, so fn needs no synchronization.
func parallelRows(height int, fn func(yStart, yEnd int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		fn(0, height)
		return
	}

	var wg sync.WaitGroup
	band := (height + workers - 1) / workers
	for start := 0; start < height; start += band {
		end := start + band
		if end > height {
			end = height
		}
		wg.Add(1)
		go func(yStart, yEnd int) {
			defer wg.Done()
			fn(yStart, yEnd)
		}(start, end)
	}
	wg.Wait()
}
