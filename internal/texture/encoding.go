package texture

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Encoding names a PNG pixel encoding as stored on disk: channel layout plus
// bit depth. The float variants cannot appear in a PNG but participate in the
// normalization policy so the compatibility table stays complete.
type Encoding int

const (
	// EncodingNone means no constraint (in Bake.Required).
	EncodingNone Encoding = iota
	EncodingGray8
	EncodingGrayAlpha8
	EncodingRGB8
	EncodingRGBA8
	EncodingGray16
	EncodingGrayAlpha16
	EncodingRGB16
	EncodingRGBA16
	EncodingRGBFloat32
	EncodingRGBAFloat32
	// EncodingUnknown marks encodings the normalizer leaves untouched
	// (paletted or sub-8-bit images).
	EncodingUnknown
)

func (e Encoding) String() string {
	switch e {
	case EncodingNone:
		return "none"
	case EncodingGray8:
		return "gray8"
	case EncodingGrayAlpha8:
		return "gray-alpha8"
	case EncodingRGB8:
		return "rgb8"
	case EncodingRGBA8:
		return "rgba8"
	case EncodingGray16:
		return "gray16"
	case EncodingGrayAlpha16:
		return "gray-alpha16"
	case EncodingRGB16:
		return "rgb16"
	case EncodingRGBA16:
		return "rgba16"
	case EncodingRGBFloat32:
		return "rgb-float32"
	case EncodingRGBAFloat32:
		return "rgba-float32"
	default:
		return "unknown"
	}
}

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// PNG color type values from the IHDR chunk.
const (
	pngColorGray      = 0
	pngColorTruecolor = 2
	pngColorPalette   = 3
	pngColorGrayAlpha = 4
	pngColorRGBA      = 6
)

// SniffEncoding reads the PNG signature and IHDR chunk from r and reports
// the stored pixel encoding. Reading stops after the IHDR fields, so the
// image is never decoded.
func SniffEncoding(r io.Reader) (Encoding, error) {
	var header [33]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return EncodingUnknown, fmt.Errorf("read png header: %w", err)
	}
	if !bytes.Equal(header[:8], pngSignature) {
		return EncodingUnknown, fmt.Errorf("not a png file")
	}
	if length := binary.BigEndian.Uint32(header[8:12]); length != 13 {
		return EncodingUnknown, fmt.Errorf("malformed IHDR length %d", length)
	}
	if !bytes.Equal(header[12:16], []byte("IHDR")) {
		return EncodingUnknown, fmt.Errorf("missing IHDR chunk")
	}

	bitDepth := header[24]
	colorType := header[25]
	switch {
	case bitDepth == 8 && colorType == pngColorGray:
		return EncodingGray8, nil
	case bitDepth == 8 && colorType == pngColorGrayAlpha:
		return EncodingGrayAlpha8, nil
	case bitDepth == 8 && colorType == pngColorTruecolor:
		return EncodingRGB8, nil
	case bitDepth == 8 && colorType == pngColorRGBA:
		return EncodingRGBA8, nil
	case bitDepth == 16 && colorType == pngColorGray:
		return EncodingGray16, nil
	case bitDepth == 16 && colorType == pngColorGrayAlpha:
		return EncodingGrayAlpha16, nil
	case bitDepth == 16 && colorType == pngColorTruecolor:
		return EncodingRGB16, nil
	case bitDepth == 16 && colorType == pngColorRGBA:
		return EncodingRGBA16, nil
	default:
		return EncodingUnknown, nil
	}
}

// SniffFileEncoding reports the stored pixel encoding of the PNG at path.
func SniffFileEncoding(path string) (Encoding, error) {
	file, err := os.Open(path)
	if err != nil {
		return EncodingUnknown, err
	}
	defer file.Close()
	return SniffEncoding(file)
}
