// Package pipeline wires the per-stage collaborators (loader, resize,
// mipmap, alpha, encode, supercompress) into the single top-level
// "convert" operation spec §2/§5 describes: decode, premultiply, fit,
// mipmap, preserve alpha coverage, per-level encode, and optionally
// supercompress - in that order, once per mip level, largest to smallest.
// Serializing the result as KTX2 is left to the caller (ktx2.Write). Grounded on the teacher's internal/cli/convert.go,
// which drives an analogous single-image "read -> transform -> write"
// sequence.
package pipeline

import (
	"github.com/woozymasta/ktxbake/internal/bc7"
	"github.com/woozymasta/ktxbake/internal/loader"
	"github.com/woozymasta/ktxbake/internal/resize"
	"github.com/woozymasta/ktxbake/internal/supercompress"
	"github.com/woozymasta/ktxbake/internal/texture"
)

// Options configures one end-to-end bake.
type Options struct {
	ColorSpace    loader.ColorSpace
	AlphaPolicy   loader.AlphaPolicy
	Target        texture.Encoding
	BC7           bc7.Options
	Caps          resize.Caps
	FilterU       resize.Filter
	FilterV       resize.Filter
	AddressU      resize.AddressMode
	AddressV      resize.AddressMode
	Mipmaps       bool
	CoverageSteps int // alpha.Preserve's maxSteps; 0 disables the pass
	Supercompress bool
	ZlibLevel     supercompress.Level
}
