package texture

import (
	"image"
	"image/color"
)

// NormalizeTarget decides which encoding a texture must be converted to
// before it is usable by the engine. It returns EncodingNone when the stored
// encoding can be kept as-is.
//
// With a required encoding (today only normal maps, which want 16-bit RGB)
// the stored encoding must match exactly. Without one, the broadly supported
// 8-bit and float encodings pass through and the 16-bit variants collapse to
// 8-bit RGBA. Anything else passes through too, flagged via unknown so the
// caller can log a diagnostic.
func NormalizeTarget(enc, required Encoding) (target Encoding, unknown bool) {
	if required != EncodingNone {
		if enc == required {
			return EncodingNone, false
		}
		return required, false
	}

	switch enc {
	case EncodingGray8, EncodingGrayAlpha8, EncodingRGB8, EncodingRGBA8,
		EncodingRGBFloat32, EncodingRGBAFloat32:
		return EncodingNone, false
	case EncodingGray16, EncodingGrayAlpha16, EncodingRGB16, EncodingRGBA16:
		return EncodingRGBA8, false
	default:
		return EncodingNone, true
	}
}

// Convert renders img into the target encoding. The second return is false
// when the target has no representable form, in which case the image should
// be kept unchanged.
func Convert(img image.Image, target Encoding) (image.Image, bool) {
	switch target {
	case EncodingGray8:
		return toGray8(img), true
	case EncodingGray16:
		return toGray16(img), true
	case EncodingRGB8:
		return toOpaqueNRGBA(img), true
	case EncodingRGBA8:
		return toNRGBA(img), true
	case EncodingRGB16:
		return toRGB16(img), true
	case EncodingRGBA16:
		return toRGBA64(img), true
	default:
		return nil, false
	}
}

func toGray8(img image.Image) *image.Gray {
	bounds := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	forEachPixel(bounds, func(x, y int) {
		dst.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.GrayModel.Convert(img.At(x, y)).(color.Gray))
	})
	return dst
}

func toGray16(img image.Image) *image.Gray16 {
	bounds := img.Bounds()
	dst := image.NewGray16(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	forEachPixel(bounds, func(x, y int) {
		dst.SetGray16(x-bounds.Min.X, y-bounds.Min.Y, color.Gray16Model.Convert(img.At(x, y)).(color.Gray16))
	})
	return dst
}

func toNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	forEachPixel(bounds, func(x, y int) {
		dst.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA))
	})
	return dst
}

// toOpaqueNRGBA drops the alpha channel, which makes the PNG encoder store
// the image as 8-bit truecolor.
func toOpaqueNRGBA(img image.Image) *image.NRGBA {
	dst := toNRGBA(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// toRGB16 drops the alpha channel at 16 bits per channel; the PNG encoder
// stores opaque RGBA64 images as 16-bit truecolor.
func toRGB16(img image.Image) *image.RGBA64 {
	dst := toRGBA64(img)
	bounds := dst.Bounds()
	forEachPixel(bounds, func(x, y int) {
		c := dst.RGBA64At(x, y)
		c.A = 0xffff
		dst.SetRGBA64(x, y, c)
	})
	return dst
}

func toRGBA64(img image.Image) *image.RGBA64 {
	bounds := img.Bounds()
	dst := image.NewRGBA64(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	forEachPixel(bounds, func(x, y int) {
		c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
		dst.SetRGBA64(x-bounds.Min.X, y-bounds.Min.Y, color.RGBA64{R: c.R, G: c.G, B: c.B, A: c.A})
	})
	return dst
}

func forEachPixel(bounds image.Rectangle, fn func(x, y int)) {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			fn(x, y)
		}
	}
}
