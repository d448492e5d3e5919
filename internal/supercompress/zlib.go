// Package supercompress implements the optional Supercompression stage
// (spec §4.F): wrapping an already-encoded level's bytes in a zlib stream,
// while keeping the pre-compression length around for the KTX2 level
// index's uncompressed_byte_length field. Grounded on the compress/decompress
// bracketing style of heisthecat31-evrFileTools' CompressedHeader handling
// (track both compressed and uncompressed sizes alongside the payload),
// using klauspost/compress's zlib implementation rather than stdlib's.
package supercompress

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zlib"
)

// Level mirrors the zlib compression level knob exposed on the CLI: spec §6
// documents the collaborator surface as `--zlib {fastest|smallest|4..9}`,
// 8 distinct levels.
type Level int

const (
	// LevelDefault uses zlib's default compression/speed tradeoff. Not
	// reachable from the CLI's choice set; only used as Level's zero value.
	LevelDefault Level = iota
	LevelFastest
	LevelSmallest
	Level4
	Level5
	Level6
	Level7
	Level8
	Level9
)

// ParseLevel parses a CLI --zlib value: "fastest", "smallest", or a bare
// numeric level "4".."9".
func ParseLevel(s string) (Level, error) {
	switch s {
	case "fastest":
		return LevelFastest, nil
	case "smallest":
		return LevelSmallest, nil
	case "4":
		return Level4, nil
	case "5":
		return Level5, nil
	case "6":
		return Level6, nil
	case "7":
		return Level7, nil
	case "8":
		return Level8, nil
	case "9":
		return Level9, nil
	default:
		return 0, fmt.Errorf("unknown zlib level %q (supported: fastest, smallest, 4..9)", s)
	}
}

func (l Level) toZlib() int {
	switch l {
	case LevelFastest:
		return zlib.BestSpeed
	case LevelSmallest:
		return zlib.BestCompression
	case Level4:
		return 4
	case Level5:
		return 5
	case Level6:
		return 6
	case Level7:
		return 7
	case Level8:
		return 8
	case Level9:
		return 9
	default:
		return zlib.DefaultCompression
	}
}

// Result carries both the compressed payload and the byte length it had
// before compression, which the KTX2 level index stores verbatim.
type Result struct {
	Compressed             []byte
	UncompressedByteLength uint64
}

// Compress wraps data in a zlib stream at the requested level.
func Compress(data []byte, level Level) (Result, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level.toZlib())
	if err != nil {
		return Result{}, fmt.Errorf("supercompress: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return Result{}, fmt.Errorf("supercompress: %w", err)
	}
	if err := w.Close(); err != nil {
		return Result{}, fmt.Errorf("supercompress: %w", err)
	}
	return Result{Compressed: buf.Bytes(), UncompressedByteLength: uint64(len(data))}, nil
}

// Decompress reverses Compress; used by tests.
func Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("supercompress: %w", err)
	}
	defer r.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("supercompress: %w", err)
	}
	return buf.Bytes(), nil
}
