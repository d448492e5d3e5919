package ktx2

import (
	"encoding/binary"
	"io"

	"github.com/woozymasta/ktxbake/internal/texture"
)

// Basic Data Format Descriptor constants (Khronos Data Format spec).
const (
	khrDFDTransferLinear = 1
	khrDFDTransferSRGB   = 2

	khrDFDColorModelRGBSDA = 1
	khrDFDColorModelBC7    = 134
	khrDFDPrimariesBT709   = 1

	khrDFDFlagAlphaStraight      = 0
	khrDFDFlagAlphaPremultiplied = 1

	// Channel type IDs (Basic Format Descriptor sample channelType field,
	// low nibble of the combined channelType byte).
	channelRed   = 0
	channelGreen = 1
	channelBlue  = 2
	channelAlpha = 15
	channelData  = 0 // BC7's single synthetic sample (§4.G.4)

	// Per-sample qualifier flags packed into the high nibble of the
	// channelType byte (KHR_DF Basic Data Format Descriptor, §4.G.4).
	qualifierLinear   = 0x10
	qualifierExponent = 0x20
	qualifierSigned   = 0x40
	qualifierFloat    = 0x80
)

type sampleField struct {
	bitOffset   uint16
	bitLength   uint8 // stored as (bits-1)
	channelType uint8 // low nibble: channel id; high nibble: qualifier flags
	samplePos   [4]uint8
	sampleLower uint32
	sampleUpper uint32
}

// buildDFD assembles the Basic Data Format Descriptor for enc: a 24-byte
// block header followed by one 16-byte sample field per channel actually
// present on the wire (4 for interleaved formats; block-compressed formats
// carry a single synthetic "whole block" sample per the BC7 DFD convention).
func buildDFD(enc texture.Encoding, premultiplied bool, sc texture.Supercompression) []byte {
	transfer := uint32(khrDFDTransferLinear)
	if enc.IsSRGB() {
		transfer = khrDFDTransferSRGB
	}
	flags := uint32(khrDFDFlagAlphaStraight)
	if premultiplied {
		flags = khrDFDFlagAlphaPremultiplied
	}

	var samples []sampleField
	switch enc {
	case texture.EncodingRGBAU8, texture.EncodingRGBASRGBU8:
		samples = interleavedU8Samples(enc.IsSRGB())
	case texture.EncodingRGBAF32:
		samples = interleavedF32Samples()
	case texture.EncodingBC7, texture.EncodingBC7SRGB:
		samples = bc7Samples()
	}

	blockSize := 24 + 16*len(samples)

	buf := make([]byte, blockSize)
	binary.LittleEndian.PutUint16(buf[0:2], 0) // vendorId
	binary.LittleEndian.PutUint16(buf[2:4], 0) // descriptorType (basicformat)
	binary.LittleEndian.PutUint16(buf[4:6], 2) // versionNumber
	binary.LittleEndian.PutUint16(buf[6:8], uint16(blockSize))
	colorModel := uint8(khrDFDColorModelRGBSDA)
	if enc.IsBlockCompressed() {
		colorModel = khrDFDColorModelBC7
	}
	buf[8] = colorModel
	buf[9] = khrDFDPrimariesBT709
	buf[10] = uint8(transfer)
	buf[11] = uint8(flags)
	// texelBlockDimension[4]: interleaved formats are 1x1x1x1 (value-1 stored
	// per byte, so zero); BC7 is a 4x4 block (value-1 = 3).
	if enc.IsBlockCompressed() {
		buf[12] = 3
		buf[13] = 3
	}
	// bytesPlane0..7 (bytesPlane0 at offset 16): total bytes per block/texel.
	buf[16] = byte(bytesPerUnit(enc, sc))

	off := 24
	for _, s := range samples {
		binary.LittleEndian.PutUint16(buf[off:off+2], s.bitOffset)
		buf[off+2] = s.bitLength
		buf[off+3] = s.channelType
		copy(buf[off+4:off+8], s.samplePos[:])
		binary.LittleEndian.PutUint32(buf[off+8:off+12], s.sampleLower)
		binary.LittleEndian.PutUint32(buf[off+12:off+16], s.sampleUpper)
		off += 16
	}
	return buf
}

// bytesPerUnit is the DFD's bytesPlane0 field: the fixed byte size of one
// block/texel, or 0 whenever sc is active (§4.G.4 — a supercompression
// scheme turns the level into an opaque byte stream with no fixed
// per-texel/per-block size, so bytesPlane0 can no longer describe it).
func bytesPerUnit(enc texture.Encoding, sc texture.Supercompression) int {
	if sc != texture.SupercompressionNone {
		return 0
	}
	switch enc {
	case texture.EncodingRGBAU8, texture.EncodingRGBASRGBU8:
		return 4
	case texture.EncodingRGBAF32:
		return 16
	case texture.EncodingBC7, texture.EncodingBC7SRGB:
		return 16
	default:
		return 0
	}
}

// interleavedU8Samples builds the four per-channel sample records for
// rgba_u8/rgba_srgb_u8. Per spec §4.G.4, "linear = (srgb ∧ i = 3)": the
// alpha channel is never gamma-encoded, so when the whole descriptor's
// transfer is sRGB the alpha sample alone carries the Linear qualifier to
// override the block-wide transfer for readers that honor it.
func interleavedU8Samples(srgb bool) []sampleField {
	mk := func(channel uint8, offset uint16, linear bool) sampleField {
		ct := channel
		if linear {
			ct |= qualifierLinear
		}
		return sampleField{bitOffset: offset, bitLength: 7, channelType: ct, sampleUpper: 255}
	}
	return []sampleField{
		mk(channelRed, 0, false), mk(channelGreen, 8, false), mk(channelBlue, 16, false),
		mk(channelAlpha, 24, srgb),
	}
}

func interleavedF32Samples() []sampleField {
	mk := func(channel uint8, offset uint16) sampleField {
		return sampleField{
			bitOffset:   offset,
			bitLength:   31,
			channelType: channel | qualifierSigned | qualifierFloat,
			sampleLower: 0xBF800000, // -1.0f
			sampleUpper: 0x3F800000, // 1.0f
		}
	}
	return []sampleField{
		mk(channelRed, 0), mk(channelGreen, 32), mk(channelBlue, 64), mk(channelAlpha, 96),
	}
}

func bc7Samples() []sampleField {
	return []sampleField{{
		bitOffset:   0,
		bitLength:   127,
		channelType: channelData,
		sampleLower: 0,
		sampleUpper: 0xFFFFFFFF,
	}}
}

// writeDFD writes dfd prefixed by its own 4-byte totalSize field, per the
// KTX2 container's "DFD block length includes itself" convention.
func writeDFD(w io.Writer, dfd []byte) error {
	if err := writeU32(w, uint32(4+len(dfd))); err != nil {
		return err
	}
	_, err := w.Write(dfd)
	return err
}
