package ktx2

import (
	"encoding/binary"
	"io"
)

// identifier is the fixed 12-byte KTX2 file signature.
var identifier = [12]byte{0xAB, 'K', 'T', 'X', ' ', '2', '0', 0xBB, 0x0D, 0x0A, 0x1A, 0x0A}

// header is the 80-byte fixed KTX2 header plus its Index substructure (the
// offsets/lengths of the DFD, key/value data, and supercompression global
// data, none of which this writer populates beyond the DFD).
type header struct {
	VkFormat               uint32
	TypeSize               uint32
	PixelWidth             uint32
	PixelHeight            uint32
	PixelDepth             uint32
	LayerCount             uint32
	FaceCount              uint32
	LevelCount             uint32
	SupercompressionScheme uint32

	DfdByteOffset uint32
	DfdByteLength uint32
	KvdByteOffset uint32
	KvdByteLength uint32
	SgdByteOffset uint64
	SgdByteLength uint64
}

func writeU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeU64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// writeHeader writes the 12-byte identifier, the 36-byte fixed fields, and
// the 32-byte Index substructure: 80 bytes total, field by field, matching
// the teacher's WriteHeader helper-per-field style.
func writeHeader(w io.Writer, h *header) error {
	if _, err := w.Write(identifier[:]); err != nil {
		return err
	}
	for _, v := range []uint32{
		h.VkFormat, h.TypeSize, h.PixelWidth, h.PixelHeight, h.PixelDepth,
		h.LayerCount, h.FaceCount, h.LevelCount, h.SupercompressionScheme,
		h.DfdByteOffset, h.DfdByteLength, h.KvdByteOffset, h.KvdByteLength,
	} {
		if err := writeU32(w, v); err != nil {
			return err
		}
	}
	if err := writeU64(w, h.SgdByteOffset); err != nil {
		return err
	}
	return writeU64(w, h.SgdByteLength)
}

// headerSize is the byte length writeHeader always produces.
const headerSize = 12 + 9*4 + 4*4 + 2*8

// levelIndexEntry is one 24-byte entry in the level index table.
type levelIndexEntry struct {
	ByteOffset             uint64
	ByteLength             uint64
	UncompressedByteLength uint64
}

const levelIndexEntrySize = 24

func writeLevelIndexEntry(w io.Writer, e levelIndexEntry) error {
	if err := writeU64(w, e.ByteOffset); err != nil {
		return err
	}
	if err := writeU64(w, e.ByteLength); err != nil {
		return err
	}
	return writeU64(w, e.UncompressedByteLength)
}
