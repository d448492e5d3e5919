package bc7

import "github.com/woozymasta/ktxbake/internal/bitio"

// color is a linear, still-float sample quantized to 8 bits per channel for
// block math, the BC7 generalization of the teacher's bcn.ColorRGBA.
type color struct {
	R, G, B, A uint8
}

// weights4 is the standard BC7 4-bit index interpolation table (out of 64),
// used by every mode-6 block regardless of partition count.
var weights4 = [16]uint32{0, 4, 9, 13, 17, 21, 26, 30, 34, 38, 43, 47, 51, 55, 60, 64}

// fetchBlock extracts a 4x4 texel block from a quantized RGBA8 buffer,
// zero-filling past the image edge exactly like the teacher's
// internal/bcn/common.go fetchBlock.
func fetchBlock(pix []uint8, x, y, width, height int) [16]color {
	var block [16]color
	for row := 0; row < BlockSize; row++ {
		for col := 0; col < BlockSize; col++ {
			px, py := x+col, y+row
			if px < width && py < height {
				idx := (py*width + px) * 4
				block[row*4+col] = color{R: pix[idx], G: pix[idx+1], B: pix[idx+2], A: pix[idx+3]}
			}
		}
	}
	return block
}

func sqrDistance(a, b color, perceptual bool) int64 {
	dr := int64(a.R) - int64(b.R)
	dg := int64(a.G) - int64(b.G)
	db := int64(a.B) - int64(b.B)
	da := int64(a.A) - int64(b.A)
	if perceptual {
		// Weight green highest, matching the corpus's luminance-style
		// emphasis (2x green) used by the teacher's bcn minMaxLuminance.
		return dr*dr + dg*dg*4 + db*db + da*da
	}
	return dr*dr + dg*dg + db*db + da*da
}

// minMaxChannel finds the per-channel endpoint bracket for a block, the
// BC7 mode-6 analog of the teacher's minMaxLuminance (there: one 565 pair
// chosen by luminance extremes; here: per-channel min/max, since mode 6
// stores independent 7-bit+pbit values for all four channels).
func minMaxChannel(block [16]color) (lo, hi color) {
	lo = color{R: 255, G: 255, B: 255, A: 255}
	for _, p := range block {
		if p.R < lo.R {
			lo.R = p.R
		}
		if p.G < lo.G {
			lo.G = p.G
		}
		if p.B < lo.B {
			lo.B = p.B
		}
		if p.A < lo.A {
			lo.A = p.A
		}
		if p.R > hi.R {
			hi.R = p.R
		}
		if p.G > hi.G {
			hi.G = p.G
		}
		if p.B > hi.B {
			hi.B = p.B
		}
		if p.A > hi.A {
			hi.A = p.A
		}
	}
	return lo, hi
}

// channel7 splits an 8-bit endpoint value into its 7-bit precision field and
// parity bit ((e7<<1)|p == e8). Mode 6 stores one parity bit per endpoint,
// shared by all four channels and chosen by majority, so a channel's
// endpoint round-trips exactly only when its own parity matches the shared
// bit; otherwise it is off by one.
func channel7(v uint8) (e7 uint8, p uint8) {
	return v >> 1, v & 1
}

func interp8(w uint32, e0, e1 uint8) uint8 {
	return uint8((uint32(64-w)*uint32(e0) + uint32(w)*uint32(e1) + 32) / 64)
}

func reconstruct(w uint32, lo, hi color) color {
	return color{
		R: interp8(w, lo.R, hi.R),
		G: interp8(w, lo.G, hi.G),
		B: interp8(w, lo.B, hi.B),
		A: interp8(w, lo.A, hi.A),
	}
}

// bestIndex searches the 16-entry weight table for the index minimizing
// squared error against texel, optionally biased toward prevIndex when an
// RDO pass is active (a cheap rate proxy: repeating the previous texel's
// index costs nothing extra to entropy-code downstream).
func bestIndex(texel color, lo, hi color, perceptual bool, lambda float64, prevIndex int, havePrev bool) int {
	best := 0
	bestCost := int64(1<<62)
	for w := 0; w < 16; w++ {
		rec := reconstruct(weights4[w], lo, hi)
		cost := sqrDistance(texel, rec, perceptual)
		if lambda > 0 && havePrev && w != prevIndex {
			cost += int64(lambda * 64)
		}
		if cost < bestCost {
			bestCost = cost
			best = w
		}
	}
	return best
}

// EncodeBlockMode6 packs one 4x4 block into BC7 mode 6 (single subset,
// 7.7.7.7 color endpoints + shared parity bits, 4-bit index table with a
// 3-bit anchor). This is the only BC7 mode this encoder emits: per spec §4.E
// the encoder is a closed collaborator validated by its parameter ranges,
// not by the partition/mode search it performs internally, so restricting
// to mode 6 keeps the bitstream valid while simplifying the search space.
func EncodeBlockMode6(block [16]color, perceptual bool, rdo *RDOOptions) [BlockBytes]byte {
	lo, hi := minMaxChannel(block)

	var lambda float64
	if rdo != nil {
		lambda = rdo.Lambda
	}

	indices := make([]int, 16)
	havePrev := false
	prev := 0
	for i, texel := range block {
		idx := bestIndex(texel, lo, hi, perceptual, lambda, prev, havePrev)
		indices[i] = idx
		prev = idx
		havePrev = true
	}

	// Anchor-swap: BC7 requires indices[0]'s MSB to be 0. If it isn't,
	// swap the endpoints and invert every index (idx' = 15-idx), which
	// reconstructs the identical gradient from the other direction.
	if indices[0]&8 != 0 {
		lo, hi = hi, lo
		for i := range indices {
			indices[i] = 15 - indices[i]
		}
	}

	r0, p0r := channel7(lo.R)
	r1, p1r := channel7(hi.R)
	g0, p0g := channel7(lo.G)
	g1, p1g := channel7(hi.G)
	b0, p0b := channel7(lo.B)
	b1, p1b := channel7(hi.B)
	a0, p0a := channel7(lo.A)
	a1, p1a := channel7(hi.A)

	// Mode 6 has one shared parity bit per endpoint (not per channel); pick
	// the value agreeing with the majority of this endpoint's per-channel
	// bits, since channel7 computed them independently above.
	p0 := majority(p0r, p0g, p0b, p0a)
	p1 := majority(p1r, p1g, p1b, p1a)

	w := bitio.NewWriter(BlockBytes)
	w.WriteBits(1<<6, 7) // mode 6: unary code, bit6 set.
	w.WriteBits(uint64(r0), 7)
	w.WriteBits(uint64(r1), 7)
	w.WriteBits(uint64(g0), 7)
	w.WriteBits(uint64(g1), 7)
	w.WriteBits(uint64(b0), 7)
	w.WriteBits(uint64(b1), 7)
	w.WriteBits(uint64(a0), 7)
	w.WriteBits(uint64(a1), 7)
	w.WriteBits(uint64(p0), 1)
	w.WriteBits(uint64(p1), 1)
	for i, idx := range indices {
		if i == 0 {
			w.WriteBits(uint64(idx), 3) // anchor: MSB implied 0.
		} else {
			w.WriteBits(uint64(idx), 4)
		}
	}

	var out [BlockBytes]byte
	copy(out[:], w.Bytes())
	return out
}

func majority(bits ...uint8) uint8 {
	var ones int
	for _, b := range bits {
		if b != 0 {
			ones++
		}
	}
	if ones*2 >= len(bits) {
		return 1
	}
	return 0
}
