// Package bc7 implements the BC7 block-compression collaborator (spec §6):
// a 16-byte-per-block codec treated as a closed-box encoder with a narrow
// parameter surface, invoked once per mip level over its whole quantized
// RGBA8 buffer. The color/index search is grounded on the teacher's
// internal/bcn/common.go block helpers (ColorRGBA, fetchBlock, sqrDistance),
// generalized from BC1's 3-bit two-color table to BC7 mode 6's single-subset
// 7.7.7.7+pbit endpoints and 4-bit index table. The parallel worker-pool
// shape is grounded on the go-astc-encoder package's
// EncodeRGBA8WithProfileAndQuality (an atomically-indexed block queue
// drained by goroutines, joined with a WaitGroup before returning); here the
// worker count is Options.MaxThreads, capped at the block count.
package bc7

import "runtime"

const (
	// BlockSize is the BC7 block footprint in texels (4x4).
	BlockSize = 4
	// BlockBytes is the fixed BC7 block size on the wire.
	BlockBytes = 16
)

// RDOOptions configures the optional rate-distortion-optimization pass
// (spec §4.E, "RDO" sub-block), validated by Validate.
type RDOOptions struct {
	Lambda                       float64
	LookbackWindow               int
	SmoothBlockErrorScale        float64
	MaxSmoothBlockStdDev         float64
	QuantizeMode6Endpoints       bool
	WeightModes                  bool
	WeightLowFrequencyPartitions bool
	Pbit1Weighting               bool
	TryTwoMatches                bool
	UltraSmoothBlockHandling     bool
}

// Options configures one Encoder, mirroring the BC7 collaborator's
// documented parameter surface in spec §4.E.
type Options struct {
	UberLevel           int
	MaxPartitionsToScan int
	MaxThreads          int
	Perceptual          bool
	RDO                 *RDOOptions
}

// DefaultMaxThreads clamps to the host's GOMAXPROCS, per spec §4.E's
// "max_threads default = clamp(cpu_count, 1, max)" rule. max is left to the
// caller (CLI) to cap; here we only supply the lower clamp.
func DefaultMaxThreads() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}
