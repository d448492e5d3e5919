package resize

import (
	"fmt"
	"math"

	"github.com/woozymasta/ktxbake/internal/texture"
)

// Caps bounds the fitted output size. Zero means "no cap" (treated as
// unbounded / +Inf).
type Caps struct {
	MaxSize, MaxWidth, MaxHeight uint32
}

func capOr(v uint32, fallback uint64) uint64 {
	if v == 0 {
		return fallback
	}
	return uint64(v)
}

// SizeToFit computes the largest (W',H') that fits within caps while
// preserving aspect ratio and never upscaling, per spec §4.B.
func SizeToFit(width, height uint32, caps Caps) (w2, h2 uint32) {
	const inf = ^uint64(0)

	maxW := minU64(capOr(caps.MaxWidth, inf), minU64(capOr(caps.MaxSize, inf), uint64(width)))
	maxH := minU64(capOr(caps.MaxHeight, inf), minU64(capOr(caps.MaxSize, inf), uint64(height)))

	sx := math.Min(float64(maxW)/float64(width), 1.0)
	sy := math.Min(float64(maxH)/float64(height), 1.0)
	s := math.Min(sx, sy)

	w := uint64(math.Floor(s * float64(width)))
	h := uint64(math.Floor(s * float64(height)))
	if w > maxW {
		w = maxW
	}
	if h > maxH {
		h = maxH
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return uint32(w), uint32(h)
}

func minU64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// Options configures one Resize call.
type Options struct {
	FilterU, FilterV   Filter
	AddressU, AddressV AddressMode
}

// Resize resamples a linear float32 RGBA image (spec invariant 1: only
// defined for EncodingRGBAF32/SupercompressionNone) to (dstW,dstH), assuming
// pixels are already premultiplied RGBA when alpha is transparency (the
// caller guarantees this before calling Resize, per spec §4.B). If either
// axis used a sharpening filter, output samples are clamped to >= 0.
func Resize(src texture.Image, dstW, dstH uint32, opts Options) (texture.Image, error) {
	if src.Encoding != texture.EncodingRGBAF32 || src.Supercompression != texture.SupercompressionNone {
		return texture.Image{}, fmt.Errorf("resize: source must be rgba_f32/uncompressed")
	}
	srcPix := texture.BytesToFloats(src.Buf)

	fu := opts.FilterU.Resolve(src.HDR)
	fv := opts.FilterV.Resolve(src.HDR)

	horiz := computeAxis(int(src.Width), int(dstW), fu, opts.AddressU)
	vert := computeAxis(int(src.Height), int(dstH), fv, opts.AddressV)

	// Horizontal pass: src (W x H) -> tmp (dstW x H).
	tmp := make([]float32, int(dstW)*int(src.Height)*4)
	for y := 0; y < int(src.Height); y++ {
		rowOff := y * int(src.Width) * 4
		outOff := y * int(dstW) * 4
		for x := 0; x < int(dstW); x++ {
			var sum [4]float64
			for _, c := range horiz[x] {
				idx := rowOff + c.index*4
				sum[0] += c.weight * float64(srcPix[idx+0])
				sum[1] += c.weight * float64(srcPix[idx+1])
				sum[2] += c.weight * float64(srcPix[idx+2])
				sum[3] += c.weight * float64(srcPix[idx+3])
			}
			o := outOff + x*4
			tmp[o+0] = float32(sum[0])
			tmp[o+1] = float32(sum[1])
			tmp[o+2] = float32(sum[2])
			tmp[o+3] = float32(sum[3])
		}
	}

	// Vertical pass: tmp (dstW x H) -> dst (dstW x dstH).
	dst := make([]float32, int(dstW)*int(dstH)*4)
	for y := 0; y < int(dstH); y++ {
		outOff := y * int(dstW) * 4
		for x := 0; x < int(dstW); x++ {
			var sum [4]float64
			for _, c := range vert[y] {
				idx := c.index*int(dstW)*4 + x*4
				sum[0] += c.weight * float64(tmp[idx+0])
				sum[1] += c.weight * float64(tmp[idx+1])
				sum[2] += c.weight * float64(tmp[idx+2])
				sum[3] += c.weight * float64(tmp[idx+3])
			}
			o := outOff + x*4
			dst[o+0] = float32(sum[0])
			dst[o+1] = float32(sum[1])
			dst[o+2] = float32(sum[2])
			dst[o+3] = float32(sum[3])
		}
	}

	if fu.Sharpens() || fv.Sharpens() {
		clampNonNegative(dst)
	}

	out := texture.NewHeapImage(dstW, dstH, texture.EncodingRGBAF32, texture.FloatsToBytes(dst))
	out.SetReleaser(texture.OwnerResamplerArena, texture.NoopReleaser)
	out.HDR = src.HDR
	out.Alpha = src.Alpha
	return out, nil
}

func clampNonNegative(pix []float32) {
	for i, v := range pix {
		if v < 0 {
			pix[i] = 0
		}
	}
}

type contrib struct {
	index  int
	weight float64
}

// computeAxis builds, for each destination index along one axis, the list
// of (source index, weight) pairs contributing to it. Weights are
// normalized by the sum of all nonzero kernel weights, including
// zero-address-mode contributions, which count toward that sum but are
// omitted from the returned list (they sample an implicit zero pixel).
func computeAxis(srcN, dstN int, f Filter, addr AddressMode) [][]contrib {
	out := make([][]contrib, dstN)
	if srcN == dstN {
		for i := range out {
			out[i] = []contrib{{index: i, weight: 1}}
		}
		return out
	}

	scale := float64(srcN) / float64(dstN)
	filterScale := scale
	if filterScale < 1 {
		filterScale = 1
	}
	support := f.support() * filterScale

	for j := 0; j < dstN; j++ {
		center := (float64(j) + 0.5) * scale
		left := int(math.Floor(center - support))
		right := int(math.Ceil(center + support))

		var contribs []contrib
		sum := 0.0
		for i := left; i <= right; i++ {
			w := f.weight((float64(i) + 0.5 - center) / filterScale)
			if w == 0 {
				continue
			}
			idx, ok := addr.resolve(i, srcN)
			if !ok {
				// AddressZero out-of-range: weight counts toward the
				// normalization denominator but samples an implicit zero
				// pixel, so omit it from contribs entirely (equivalent to
				// contributing weight*0).
				sum += w
				continue
			}
			contribs = append(contribs, contrib{index: idx, weight: w})
			sum += w
		}
		if sum != 0 {
			for k := range contribs {
				contribs[k].weight /= sum
			}
		}
		if len(contribs) == 0 {
			contribs = []contrib{{index: 0, weight: 0}}
		}
		out[j] = contribs
	}
	return out
}
