// Package ktx2 implements the KTX2 Container Writer stage (spec §4.G): a
// bit-exact 80-byte header, Data Format Descriptor, level index, and
// mip-chain payload. Grounded on the field-by-field binary.Write style of
// the teacher's internal/dds/write.go (WriteHeader writes every struct field
// through a single little-endian helper) and on internal/edds's
// WriteEDDSWithMipmaps, which established the "payload written smallest
// first, index table addressed largest-first" trick this package reuses for
// the KTX2 level index.
package ktx2

import (
	"fmt"

	"github.com/woozymasta/ktxbake/internal/texture"
)

// Vulkan format identifiers used by this writer (VK_FORMAT_* values from the
// Vulkan/KTX2 registries).
const (
	vkFormatR8G8B8A8Unorm      = 37
	vkFormatR8G8B8A8Srgb       = 43
	vkFormatR32G32B32A32Sfloat = 109
	vkFormatBC7UnormBlock      = 145
	vkFormatBC7SrgbBlock       = 146
)

func vkFormat(enc texture.Encoding) (uint32, error) {
	switch enc {
	case texture.EncodingRGBAU8:
		return vkFormatR8G8B8A8Unorm, nil
	case texture.EncodingRGBASRGBU8:
		return vkFormatR8G8B8A8Srgb, nil
	case texture.EncodingRGBAF32:
		return vkFormatR32G32B32A32Sfloat, nil
	case texture.EncodingBC7:
		return vkFormatBC7UnormBlock, nil
	case texture.EncodingBC7SRGB:
		return vkFormatBC7SrgbBlock, nil
	default:
		return 0, fmt.Errorf("%w: ktx2: no VkFormat for encoding %s", texture.ErrInvalidInput, enc)
	}
}

// typeSize is the KTX2 header's typeSize field: the byte size of one
// fundamental component, or 1 for block-compressed formats (the spec
// defines typeSize==1 whenever a format has no meaningful "type").
func typeSize(enc texture.Encoding) uint32 {
	switch enc {
	case texture.EncodingRGBAF32:
		return 4
	case texture.EncodingRGBAU8, texture.EncodingRGBASRGBU8:
		return 1
	default:
		return 1
	}
}

// levelAlignment is the required byte alignment of an uncompressed level's
// payload offset. Supercompressed levels need no alignment (scheme-specific
// decoders read a byte stream, not a typed array), so alignment collapses
// to 1 once supercompression is active.
func levelAlignment(enc texture.Encoding, sc texture.Supercompression) uint64 {
	if sc != texture.SupercompressionNone {
		return 1
	}
	switch enc {
	case texture.EncodingRGBAF32, texture.EncodingBC7, texture.EncodingBC7SRGB:
		return 16
	default:
		return 4
	}
}
