package pipeline

import (
	"fmt"

	"github.com/woozymasta/ktxbake/internal/alpha"
	"github.com/woozymasta/ktxbake/internal/encode"
	"github.com/woozymasta/ktxbake/internal/loader"
	"github.com/woozymasta/ktxbake/internal/mipmap"
	"github.com/woozymasta/ktxbake/internal/resize"
	"github.com/woozymasta/ktxbake/internal/supercompress"
	"github.com/woozymasta/ktxbake/internal/texture"
)

// Bake runs the A-through-F pipeline stages over encodedBytes and returns
// the finalized Texture, ready for ktx2.Write.
func Bake(encodedBytes []byte, opts Options) (*texture.Texture, error) {
	base, err := loader.Load(encodedBytes, opts.ColorSpace, opts.AlphaPolicy)
	if err != nil {
		return nil, fmt.Errorf("pipeline: load: %w", err)
	}
	defer base.Release()

	fitW, fitH := resize.SizeToFit(base.Width, base.Height, opts.Caps)
	resizeOpts := resize.Options{
		FilterU: opts.FilterU, FilterV: opts.FilterV,
		AddressU: opts.AddressU, AddressV: opts.AddressV,
	}

	fitted := base
	if fitW != base.Width || fitH != base.Height {
		fitted, err = resize.Resize(base, fitW, fitH, resizeOpts)
		if err != nil {
			return nil, fmt.Errorf("pipeline: fit resize: %w", err)
		}
		defer fitted.Release()

		// Spec §4.B: "After resize, if alpha = alpha_test{...} invoke
		// preserveAlphaCoverage with the recorded target_coverage." This
		// applies to the fit-resize itself, not just mip levels.
		if opts.AlphaPolicy.Kind == loader.AlphaCutout && opts.CoverageSteps > 0 {
			pix := texture.BytesToFloats(fitted.Buf)
			alpha.Preserve(pix, fitted.HDR, opts.AlphaPolicy.Threshold, base.Alpha.TargetCoverage, opts.CoverageSteps)
			fitted.Buf = texture.FloatsToBytes(pix)
		}
	}

	blockSize := uint32(1)
	if opts.Target.IsBlockCompressed() {
		blockSize = 4
	}

	levels := []texture.Image{fitted}
	if opts.Mipmaps {
		gen := mipmap.New(fitted, blockSize, resizeOpts)
		for gen.HasNext() {
			lvl, err := gen.Next()
			if err != nil {
				return nil, fmt.Errorf("pipeline: mipmap: %w", err)
			}
			levels = append(levels, lvl)
		}
	}

	if opts.AlphaPolicy.Kind == loader.AlphaCutout && opts.CoverageSteps > 0 {
		for i := 1; i < len(levels); i++ {
			pix := texture.BytesToFloats(levels[i].Buf)
			alpha.Preserve(pix, levels[i].HDR, opts.AlphaPolicy.Threshold, levels[0].Alpha.TargetCoverage, opts.CoverageSteps)
			levels[i].Buf = texture.FloatsToBytes(pix)
		}
	}

	tex := &texture.Texture{}
	encOpts := encode.Options{Target: opts.Target, BC7: opts.BC7}
	for _, lvl := range levels {
		out, err := encode.Encode(lvl, encOpts)
		if err != nil {
			return nil, fmt.Errorf("pipeline: encode: %w", err)
		}
		if opts.Supercompress {
			res, err := supercompress.Compress(out.Buf, opts.ZlibLevel)
			if err != nil {
				return nil, fmt.Errorf("pipeline: supercompress: %w", err)
			}
			out.Buf = res.Compressed
			out.UncompressedByteLength = res.UncompressedByteLength
			out.Supercompression = texture.SupercompressionZlib
		}
		if err := tex.Append(out); err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
	}

	return tex, nil
}
