// Package legacyedds implements the supplemented --legacy-edds escape
// hatch (spec §7): alongside the primary KTX2 output, emit a secondary
// BGRA8/LZ4 EDDS container from the finalized rgba_u8 base level, for
// pipelines still consuming the older Enfusion-style format during a
// migration window. Grounded on the teacher's own internal/imageio "edds"
// output case (internal/imageio/write.go), which drives the very same
// third-party github.com/woozymasta/edds + github.com/woozymasta/bcn pair;
// this package adapts that call site to take a finalized texture.Image
// instead of a generic image.Image loaded from disk.
package legacyedds

import (
	"fmt"
	"image"

	"github.com/woozymasta/bcn"
	"github.com/woozymasta/edds"

	"github.com/woozymasta/ktxbake/internal/texture"
)

// Write emits path as a BGRA8, LZ4-chunk-compressed EDDS file built from
// base, which must be an EncodingRGBAU8 level (the caller is expected to
// pass the pipeline's finalized rgba_u8 base level; the external edds
// writer regenerates its own mip chain from it via maxMipMaps rather than
// reusing this pipeline's already-resized levels, a simplification
// documented here since the legacy format is a migration convenience, not
// the primary output path).
func Write(path string, base texture.Image, maxMipMaps int) error {
	if base.Encoding != texture.EncodingRGBAU8 {
		return fmt.Errorf("%w: legacyedds: base level must be rgba_u8, got %s", texture.ErrInvalidInput, base.Encoding)
	}

	img := toNRGBA(base)

	return edds.WriteWithOptions(img, path, &edds.WriteOptions{
		Format:     bcn.FormatBGRA8,
		MaxMipMaps: maxMipMaps,
		Compress:   true,
	})
}

func toNRGBA(img texture.Image) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, int(img.Width), int(img.Height)))
	copy(out.Pix, img.Buf)
	return out
}
