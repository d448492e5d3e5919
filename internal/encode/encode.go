package encode

import (
	"fmt"

	"github.com/woozymasta/ktxbake/internal/bc7"
	"github.com/woozymasta/ktxbake/internal/texture"
)

// Encode produces the final on-disk level for src (which must be
// rgba_f32/uncompressed) according to opts.Target.
func Encode(src texture.Image, opts Options) (texture.Image, error) {
	if src.Encoding != texture.EncodingRGBAF32 || src.Supercompression != texture.SupercompressionNone {
		return texture.Image{}, fmt.Errorf("%w: encode: source must be rgba_f32/uncompressed", texture.ErrInvalidInput)
	}

	switch opts.Target {
	case texture.EncodingRGBAF32:
		return passthrough(src), nil
	case texture.EncodingRGBAU8, texture.EncodingRGBASRGBU8:
		return quantizeToU8(src, opts.Target), nil
	case texture.EncodingBC7, texture.EncodingBC7SRGB:
		return encodeBC7(src, opts)
	default:
		return texture.Image{}, fmt.Errorf("%w: encode: unsupported target encoding %s", texture.ErrInvalidOption, opts.Target)
	}
}

func passthrough(src texture.Image) texture.Image {
	buf := make([]byte, len(src.Buf))
	copy(buf, src.Buf)
	out := texture.NewHeapImage(src.Width, src.Height, texture.EncodingRGBAF32, buf)
	out.Alpha = src.Alpha
	out.HDR = src.HDR
	return out
}

func quantizeToU8(src texture.Image, target texture.Encoding) texture.Image {
	pix := texture.BytesToFloats(src.Buf)
	out := make([]byte, len(pix))
	srgb := target == texture.EncodingRGBASRGBU8
	for i := 0; i < len(pix); i += 4 {
		r, g, b, a := clamp01(pix[i]), clamp01(pix[i+1]), clamp01(pix[i+2]), clamp01(pix[i+3])
		if srgb {
			r, g, b = gammaEncode(r), gammaEncode(g), gammaEncode(b)
		}
		out[i+0] = quantizeU8(r)
		out[i+1] = quantizeU8(g)
		out[i+2] = quantizeU8(b)
		out[i+3] = quantizeU8(a)
	}
	img := texture.NewHeapImage(src.Width, src.Height, target, out)
	img.Alpha = src.Alpha
	img.HDR = src.HDR
	return img
}

func encodeBC7(src texture.Image, opts Options) (texture.Image, error) {
	quantSource := texture.EncodingRGBAU8
	if opts.Target == texture.EncodingBC7SRGB {
		quantSource = texture.EncodingRGBASRGBU8
	}
	quantized := quantizeToU8(src, quantSource)

	blocks, err := bc7.Encode(quantized.Buf, int(src.Width), int(src.Height), opts.BC7)
	if err != nil {
		return texture.Image{}, fmt.Errorf("bc7 encode: %w", err)
	}

	img := texture.NewHeapImage(src.Width, src.Height, opts.Target, blocks)
	img.Alpha = src.Alpha
	img.HDR = src.HDR
	return img, nil
}
