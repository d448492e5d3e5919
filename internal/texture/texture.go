// Package texture holds the in-memory image/texture data model shared by
// every stage of the bake pipeline: the decoded source image, the mipmap
// chain it grows into, and the byte buffers that eventually become a KTX2
// level index.
package texture

import "fmt"

// Encoding is the pixel encoding of an Image's buffer.
type Encoding int

const (
	// EncodingRGBAF32 is interleaved float32 RGBA, linear light. The only
	// encoding in which resizing, mipmap generation, premultiplication and
	// alpha-coverage operations are defined.
	EncodingRGBAF32 Encoding = iota
	// EncodingRGBAU8 is interleaved linear 8-bit RGBA.
	EncodingRGBAU8
	// EncodingRGBASRGBU8 is interleaved 8-bit RGBA with sRGB-encoded color channels.
	EncodingRGBASRGBU8
	// EncodingBC7 is a packed array of 16-byte BC7 blocks, linear transfer.
	EncodingBC7
	// EncodingBC7SRGB is a packed array of 16-byte BC7 blocks, sRGB transfer.
	EncodingBC7SRGB
)

// String implements fmt.Stringer.
func (e Encoding) String() string {
	switch e {
	case EncodingRGBAF32:
		return "rgba_f32"
	case EncodingRGBAU8:
		return "rgba_u8"
	case EncodingRGBASRGBU8:
		return "rgba_srgb_u8"
	case EncodingBC7:
		return "bc7"
	case EncodingBC7SRGB:
		return "bc7_srgb"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// IsBlockCompressed reports whether the encoding stores 4x4 blocks rather
// than interleaved per-pixel samples.
func (e Encoding) IsBlockCompressed() bool {
	return e == EncodingBC7 || e == EncodingBC7SRGB
}

// IsSRGB reports whether the encoding carries sRGB-gamma color channels.
func (e Encoding) IsSRGB() bool {
	return e == EncodingRGBASRGBU8 || e == EncodingBC7SRGB
}

// Supercompression identifies the per-level supercompression scheme.
type Supercompression int

const (
	// SupercompressionNone stores level bytes as produced by the encoder.
	SupercompressionNone Supercompression = iota
	// SupercompressionZlib wraps level bytes in a zlib (RFC1950) stream.
	SupercompressionZlib
)

// AlphaKind classifies how an Image's alpha channel is used.
type AlphaKind int

const (
	// AlphaOpacity marks alpha as ordinary, premultiplied transparency.
	AlphaOpacity AlphaKind = iota
	// AlphaTest marks alpha as an alpha-test cutout whose coverage at a
	// threshold must be preserved across mip levels.
	AlphaTest
	// AlphaOther marks alpha as carrying non-transparency data (e.g. a mask
	// channel); it is never premultiplied.
	AlphaOther
)

// Alpha describes how an Image's alpha channel should be treated.
type Alpha struct {
	Kind            AlphaKind
	Threshold       float64 // only meaningful for AlphaTest
	TargetCoverage  float64 // only meaningful for AlphaTest, set once pre-resize
	coverageIsSet   bool
}

// Premultiplied reports whether RGB is expected to already be multiplied by A.
// Per spec: true iff Kind is AlphaOpacity or AlphaTest.
func (a Alpha) Premultiplied() bool {
	return a.Kind == AlphaOpacity || a.Kind == AlphaTest
}

// WithTargetCoverage returns a copy of a with TargetCoverage recorded.
func (a Alpha) WithTargetCoverage(coverage float64) Alpha {
	a.TargetCoverage = coverage
	a.coverageIsSet = true
	return a
}

// HasTargetCoverage reports whether WithTargetCoverage has been called.
func (a Alpha) HasTargetCoverage() bool {
	return a.coverageIsSet
}

// Owner identifies which allocator capability owns an Image's buffer, and
// therefore which free path must run to release it. Matches the "sum-typed
// capability" design note in spec §9: Heap, DecoderArena, ResamplerArena,
// Bc7EncoderHandle.
type Owner int

const (
	// OwnerHeap means the buffer is a plain Go slice; release is a no-op
	// (left to the GC).
	OwnerHeap Owner = iota
	// OwnerDecoderArena means the buffer came from the image decoder and
	// must be released through the decoder's free function.
	OwnerDecoderArena
	// OwnerResamplerArena means the buffer came from the resampler.
	OwnerResamplerArena
	// OwnerBC7Encoder means the buffer came from (and the encoder instance
	// is owned by) a bc7 encoder handle.
	OwnerBC7Encoder
)

// Releaser is the capability returned alongside a buffer by a third-party
// allocator. Release is idempotent; a moved-out Image carries a no-op
// Releaser.
type Releaser interface {
	Release()
}

type noopReleaser struct{}

func (noopReleaser) Release() {}

// NoopReleaser is the Releaser used for heap-owned and already-moved buffers.
var NoopReleaser Releaser = noopReleaser{}

// Image is one level of pixel data: width, height, encoding,
// supercompression, alpha semantics, HDR provenance, and an owned byte
// buffer.
//
// Invariants (spec §3):
//  1. Encoding==RGBAF32 && Supercompression==None is the only state in
//     which resize/mipmap/premultiply/alpha-coverage are defined.
//  2. Block-compressed encodings require Width,Height >= 1; the last mip
//     level may be smaller than the 4x4 block footprint (stored padded).
//  3. Alpha.Premultiplied() iff Alpha.Kind is AlphaOpacity or AlphaTest.
//  4. TargetCoverage is computed exactly once, pre-resize, at scale 1.0.
type Image struct {
	Width, Height           uint32
	Encoding                Encoding
	Supercompression        Supercompression
	Alpha                   Alpha
	HDR                     bool
	UncompressedByteLength  uint64
	Buf                     []byte
	Owner                   Owner
	releaser                Releaser
}

// NewHeapImage builds an Image whose buffer is an ordinary Go slice.
func NewHeapImage(w, h uint32, enc Encoding, buf []byte) Image {
	return Image{
		Width:                  w,
		Height:                 h,
		Encoding:               enc,
		Supercompression:       SupercompressionNone,
		UncompressedByteLength: uint64(len(buf)),
		Buf:                    buf,
		Owner:                  OwnerHeap,
		releaser:               NoopReleaser,
	}
}

// SetReleaser attaches the allocator capability that owns img.Buf.
func (img *Image) SetReleaser(owner Owner, r Releaser) {
	img.Owner = owner
	if r == nil {
		r = NoopReleaser
	}
	img.releaser = r
}

// Release runs the owning allocator's free path. Safe to call multiple
// times; safe to call on a zero-value Image.
func (img *Image) Release() {
	if img.releaser != nil {
		img.releaser.Release()
	}
	img.releaser = nil
}

// Move transfers ownership of img's buffer to the returned Image, clearing
// img to an empty value whose subsequent Release is a no-op.
func (img *Image) Move() Image {
	out := *img
	img.Buf = nil
	img.releaser = NoopReleaser
	img.Owner = OwnerHeap
	return out
}

// FloatSampleCount returns the number of float32 samples (4 per pixel) in
// an EncodingRGBAF32 image.
func (img *Image) FloatSampleCount() int {
	return int(img.Width) * int(img.Height) * 4
}

// BlocksWide returns ceil(Width/4), the horizontal 4x4 block count.
func (img *Image) BlocksWide() uint32 {
	return (img.Width + 3) / 4
}

// BlocksHigh returns ceil(Height/4), the vertical 4x4 block count.
func (img *Image) BlocksHigh() uint32 {
	return (img.Height + 3) / 4
}

// MaxLevels bounds the number of mip levels any texture dimension may
// produce: floor(log2(max(W,H,D))) + 1, clamped here to the hard cap.
const MaxLevels = 32

// Texture is a bounded sequence of Images sharing encoding, supercompression
// and alpha premultiplication, with level[i+1] dimensions equal to
// floor(level[i]/2) (floored at 1).
type Texture struct {
	Levels []Image // Levels[0] is the largest (base) level.
}

// Release releases every level's buffer through its owning allocator.
func (t *Texture) Release() {
	for i := range t.Levels {
		t.Levels[i].Release()
	}
}

// Append adds a level, enforcing the MaxLevels bound.
func (t *Texture) Append(img Image) error {
	if len(t.Levels) >= MaxLevels {
		return fmt.Errorf("texture: cannot append level %d: exceeds MaxLevels=%d", len(t.Levels), MaxLevels)
	}
	t.Levels = append(t.Levels, img)
	return nil
}
