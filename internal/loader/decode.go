package loader

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	wmpng "github.com/woozymasta/png"

	"github.com/schwarzlichtbezirk/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/woozymasta/ktxbake/internal/texture"
)

// decoded is the normalized result of the decode step: non-HDR sources
// arrive as 8-bit-per-channel samples (still needing the caller's gamma
// applied); HDR sources arrive pre-converted to linear float.
type decoded struct {
	hdr           bool
	width, height int
	// ldr holds interleaved 8-bit RGBA samples when !hdr.
	ldr []uint8
	// linear holds interleaved linear float32 RGBA samples when hdr.
	linear []float32
}

// decodeAny sniffs the container format from magic bytes and decodes it.
// PNG goes through woozymasta/png rather than stdlib image/png: the
// teacher's own imageio.Read blank-imports it ahead of stdlib precisely to
// pick up CgBI (iPhone-PNG) handling, which is the same "disables iPhone
// PNG BGR->RGB special-casing" concern spec §4.A calls out. JPEG has no
// ecosystem alternative worth wiring over stdlib. BMP, TIFF and TGA reuse
// the teacher's existing third-party codecs. Radiance HDR has no codec
// anywhere in the pack and is hand-decoded in hdrdecode.go.
func decodeAny(data []byte) (decoded, error) {
	switch {
	case isHDR(data):
		pix, w, h, err := decodeHDR(data)
		if err != nil {
			return decoded{}, fmt.Errorf("%w: %v", texture.ErrInvalidInput, err)
		}
		return decoded{hdr: true, width: w, height: h, linear: pix}, nil

	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		img, err := wmpng.Decode(bytes.NewReader(data))
		if err != nil {
			return decoded{}, fmt.Errorf("%w: png: %v", texture.ErrInvalidInput, err)
		}
		return ldrFromImage(img), nil

	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8:
		img, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return decoded{}, fmt.Errorf("%w: jpeg: %v", texture.ErrInvalidInput, err)
		}
		return ldrFromImage(img), nil

	case bytes.HasPrefix(data, []byte("BM")):
		img, err := bmp.Decode(bytes.NewReader(data))
		if err != nil {
			return decoded{}, fmt.Errorf("%w: bmp: %v", texture.ErrInvalidInput, err)
		}
		return ldrFromImage(img), nil

	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		img, err := tiff.Decode(bytes.NewReader(data))
		if err != nil {
			return decoded{}, fmt.Errorf("%w: tiff: %v", texture.ErrInvalidInput, err)
		}
		return ldrFromImage(img), nil

	default:
		// TGA has no reliable magic; it is the catch-all per the teacher's
		// own extension-dispatch fallback ordering.
		img, err := tga.Decode(bytes.NewReader(data))
		if err != nil {
			return decoded{}, fmt.Errorf("%w: unrecognized image format", texture.ErrInvalidInput)
		}
		return ldrFromImage(img), nil
	}
}

// ldrFromImage converts a decoded image.Image to interleaved 8-bit straight
// (non-premultiplied) RGBA, disabling any premultiply-on-load / iPhone-BGR
// special casing by going through color.NRGBAModel's canonical conversion
// (spec §4.A requests canonical RGB ordering and premultiply-off from the
// decoder — premultiplication, when wanted, is applied explicitly later by
// this package based on the caller's alpha policy).
func ldrFromImage(img image.Image) decoded {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			nrgba.SetNRGBA(x, y, c)
		}
	}
	return decoded{hdr: false, width: w, height: h, ldr: nrgba.Pix}
}
