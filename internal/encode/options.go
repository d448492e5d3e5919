// Package encode implements the Per-Level Encoder stage (spec §4.E): it
// takes one rgba_f32 level (already resized, mipmapped, and alpha-coverage
// preserved) and produces the final on-disk encoding for that level -
// straight float32 passthrough, 8-bit quantization with or without sRGB
// gamma, or BC7 block compression via internal/bc7. Grounded on the
// teacher's internal/imageio write path for the quantization arithmetic and
// on internal/bc7 (itself grounded on go-astc-encoder) for the block path.
package encode

import (
	"github.com/woozymasta/ktxbake/internal/bc7"
	"github.com/woozymasta/ktxbake/internal/texture"
)

// Options configures a single Encode call. BC7 is only consulted when
// Target is EncodingBC7/EncodingBC7SRGB.
type Options struct {
	Target texture.Encoding
	BC7    bc7.Options
}
