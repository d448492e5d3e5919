package ktx2

import (
	"fmt"
	"io"

	"github.com/woozymasta/ktxbake/internal/texture"
)

// Write serializes tex as a complete KTX2 file to w. Levels must already be
// in the writer's expected order (Levels[0] largest); supercompression and
// encoding are assumed uniform across all levels, per spec §3 invariant.
//
// Payload offsets are computed while iterating levels smallest-first (the
// order KTX2 actually requires compressed levels be written in, since later
// levels may depend on earlier ones' scratch buffers in reference encoders),
// but the level index itself is emitted largest-first, matching the header
// layout. This is the same reversed-pairing the teacher's
// edds.WriteEDDSWithMipmaps uses: it builds mipmaps smallest-last internally
// but writes both the block-header table and the block bodies in
// smallest-to-largest order to the file, leaving the largest-first
// structural table (here, the level index array) to simply read its slots
// in the matching order.
func Write(w io.Writer, tex *texture.Texture) error {
	if len(tex.Levels) == 0 {
		return fmt.Errorf("%w: ktx2: texture has no levels", texture.ErrInvalidInput)
	}
	base := tex.Levels[0]
	vk, err := vkFormat(base.Encoding)
	if err != nil {
		return err
	}
	scheme := uint32(0)
	if base.Supercompression == texture.SupercompressionZlib {
		scheme = 1
	}

	dfd := buildDFD(base.Encoding, base.Alpha.Premultiplied(), base.Supercompression)

	levelCount := len(tex.Levels)
	dfdOffset := uint32(headerSize + levelCount*levelIndexEntrySize)
	dfdLength := uint32(4 + len(dfd))

	// Compute payload offsets by walking levels smallest-first (reverse of
	// storage order), aligning each to its encoding's required alignment,
	// then store the offset into the index slot matching its position in
	// tex.Levels (largest-first).
	entries := make([]levelIndexEntry, levelCount)
	offset := uint64(dfdOffset) + uint64(dfdLength)
	align := levelAlignment(base.Encoding, base.Supercompression)
	for i := levelCount - 1; i >= 0; i-- {
		lvl := tex.Levels[i]
		offset = alignUp(offset, align)
		entries[i] = levelIndexEntry{
			ByteOffset:             offset,
			ByteLength:             uint64(len(lvl.Buf)),
			UncompressedByteLength: lvl.UncompressedByteLength,
		}
		offset += uint64(len(lvl.Buf))
	}

	h := &header{
		VkFormat:               vk,
		TypeSize:               typeSize(base.Encoding),
		PixelWidth:             base.Width,
		PixelHeight:            base.Height,
		PixelDepth:             0,
		LayerCount:             0,
		FaceCount:              1,
		LevelCount:             uint32(levelCount),
		SupercompressionScheme: scheme,
		DfdByteOffset:          dfdOffset,
		DfdByteLength:          dfdLength,
	}
	if err := writeHeader(w, h); err != nil {
		return fmt.Errorf("%w: ktx2 header: %v", texture.ErrWriterFailed, err)
	}

	// Level index is written largest-first (entries[0] first), matching the
	// order KTX2 readers expect, even though the offsets inside it were
	// computed in the opposite, smallest-first iteration above.
	for _, e := range entries {
		if err := writeLevelIndexEntry(w, e); err != nil {
			return fmt.Errorf("%w: ktx2 level index: %v", texture.ErrWriterFailed, err)
		}
	}

	if err := writeDFD(w, dfd); err != nil {
		return fmt.Errorf("%w: ktx2 dfd: %v", texture.ErrWriterFailed, err)
	}

	// Payload is written smallest-first, the same order the offsets were
	// computed in, so padding lands exactly where entries[] says it will.
	pos := uint64(dfdOffset) + uint64(dfdLength)
	for i := levelCount - 1; i >= 0; i-- {
		lvl := tex.Levels[i]
		target := entries[i].ByteOffset
		if target < pos {
			return fmt.Errorf("%w: ktx2: level %d offset went backwards", texture.ErrWriterFailed, i)
		}
		if err := writePadding(w, target-pos); err != nil {
			return fmt.Errorf("%w: ktx2 padding: %v", texture.ErrWriterFailed, err)
		}
		if _, err := w.Write(lvl.Buf); err != nil {
			return fmt.Errorf("%w: ktx2 level %d payload: %v", texture.ErrWriterFailed, i, err)
		}
		pos = target + uint64(len(lvl.Buf))
	}

	return nil
}

func alignUp(v, align uint64) uint64 {
	if align <= 1 {
		return v
	}
	rem := v % align
	if rem == 0 {
		return v
	}
	return v + (align - rem)
}

func writePadding(w io.Writer, n uint64) error {
	if n == 0 {
		return nil
	}
	zeros := make([]byte, n)
	_, err := w.Write(zeros)
	return err
}
