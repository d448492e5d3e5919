package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/woozymasta/ktxbake/internal/bc7"
	"github.com/woozymasta/ktxbake/internal/loader"
	"github.com/woozymasta/ktxbake/internal/resize"
	"github.com/woozymasta/ktxbake/internal/supercompress"
	"github.com/woozymasta/ktxbake/internal/texture"
)

func encodeSolidPNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func baseOptions(target texture.Encoding) Options {
	return Options{
		ColorSpace:  loader.ColorSpaceLinear,
		AlphaPolicy: loader.AlphaPolicy{Kind: loader.AlphaPremultiplied},
		Target:      target,
		BC7:         bc7.Options{UberLevel: 0, MaxPartitionsToScan: 1, MaxThreads: 1},
		FilterU:     resize.FilterTriangle,
		FilterV:     resize.FilterTriangle,
		AddressU:    resize.AddressClamp,
		AddressV:    resize.AddressClamp,
	}
}

// TestBakeRGBAU8WithMipmapsProducesFullChain covers spec scenario S1/S2:
// end to end conversion down to a 1x1 level.
func TestBakeRGBAU8WithMipmapsProducesFullChain(t *testing.T) {
	t.Parallel()

	data := encodeSolidPNG(t, 8, 8, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	opts := baseOptions(texture.EncodingRGBAU8)
	opts.Mipmaps = true

	tex, err := Bake(data, opts)
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	// 8x8 -> 4x4 -> 2x2 -> 1x1: 4 levels.
	if len(tex.Levels) != 4 {
		t.Fatalf("level count = %d, want 4", len(tex.Levels))
	}
	if tex.Levels[0].Width != 8 || tex.Levels[0].Height != 8 {
		t.Errorf("base level dims = %dx%d, want 8x8", tex.Levels[0].Width, tex.Levels[0].Height)
	}
	last := tex.Levels[len(tex.Levels)-1]
	if last.Width != 1 || last.Height != 1 {
		t.Errorf("last level dims = %dx%d, want 1x1", last.Width, last.Height)
	}
	for i, lvl := range tex.Levels {
		if lvl.Encoding != texture.EncodingRGBAU8 {
			t.Errorf("level %d encoding = %v, want rgba_u8", i, lvl.Encoding)
		}
	}
}

func TestBakeWithoutMipmapsProducesSingleLevel(t *testing.T) {
	t.Parallel()

	data := encodeSolidPNG(t, 4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	opts := baseOptions(texture.EncodingRGBAF32)
	opts.Mipmaps = false

	tex, err := Bake(data, opts)
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	if len(tex.Levels) != 1 {
		t.Fatalf("level count = %d, want 1", len(tex.Levels))
	}
}

func TestBakeBC7StopsAtBlockSize(t *testing.T) {
	t.Parallel()

	data := encodeSolidPNG(t, 8, 8, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	opts := baseOptions(texture.EncodingBC7)
	opts.Mipmaps = true

	tex, err := Bake(data, opts)
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	// BC7's 4x4 block footprint stops mipmapping once both sides are 4:
	// 8x8 -> 4x4, 2 levels.
	if len(tex.Levels) != 2 {
		t.Fatalf("level count = %d, want 2 (stop at BC7 block size)", len(tex.Levels))
	}
	for i, lvl := range tex.Levels {
		if len(lvl.Buf)%bc7.BlockBytes != 0 {
			t.Errorf("level %d buffer length %d not a multiple of BlockBytes", i, len(lvl.Buf))
		}
	}
}

func TestBakeSupercompressSetsSchemeAndUncompressedLength(t *testing.T) {
	t.Parallel()

	data := encodeSolidPNG(t, 4, 4, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	opts := baseOptions(texture.EncodingRGBAU8)
	opts.Supercompress = true
	opts.ZlibLevel = supercompress.LevelSmallest

	tex, err := Bake(data, opts)
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	lvl := tex.Levels[0]
	if lvl.Supercompression != texture.SupercompressionZlib {
		t.Fatalf("Supercompression = %v, want zlib", lvl.Supercompression)
	}
	if lvl.UncompressedByteLength != 4*4*4 {
		t.Errorf("UncompressedByteLength = %d, want %d", lvl.UncompressedByteLength, 4*4*4)
	}
}

func TestBakeCapsResizesBeforeMipmap(t *testing.T) {
	t.Parallel()

	data := encodeSolidPNG(t, 16, 16, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	opts := baseOptions(texture.EncodingRGBAF32)
	opts.Caps = resize.Caps{MaxSize: 8}
	opts.Mipmaps = false

	tex, err := Bake(data, opts)
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	if tex.Levels[0].Width != 8 || tex.Levels[0].Height != 8 {
		t.Fatalf("fitted dims = %dx%d, want 8x8", tex.Levels[0].Width, tex.Levels[0].Height)
	}
}

func encodeCheckerAlphaPNG(t *testing.T, n int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			a := uint8(0)
			if (x/2+y/2)%2 == 0 {
				a = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 200, B: 200, A: a})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func u8Coverage(buf []byte, threshold float64) float64 {
	q := uint8(threshold*255 + 0.5)
	n := len(buf) / 4
	pass := 0
	for i := 0; i < n; i++ {
		if buf[i*4+3] > q {
			pass++
		}
	}
	return float64(pass) / float64(n)
}

// TestBakeCapsPreservesAlphaCoverageOnFitResize covers the spec §4.B
// requirement that preserveAlphaCoverage runs after ANY resize, including
// the caps-driven fit-resize (not just mip levels). Without it, a
// cutout-alpha base level resized via --max-size ships with unadjusted
// coverage.
func TestBakeCapsPreservesAlphaCoverageOnFitResize(t *testing.T) {
	t.Parallel()

	data := encodeCheckerAlphaPNG(t, 16)
	threshold := 0.5

	withPreserve := baseOptions(texture.EncodingRGBAU8)
	withPreserve.AlphaPolicy = loader.AlphaPolicy{Kind: loader.AlphaCutout, Threshold: threshold}
	withPreserve.Caps = resize.Caps{MaxSize: 8}
	withPreserve.Mipmaps = false
	withPreserve.CoverageSteps = 16

	withoutPreserve := withPreserve
	withoutPreserve.CoverageSteps = 0

	texWith, err := Bake(data, withPreserve)
	if err != nil {
		t.Fatalf("Bake (with preserve): %v", err)
	}
	texWithout, err := Bake(data, withoutPreserve)
	if err != nil {
		t.Fatalf("Bake (without preserve): %v", err)
	}

	// target_coverage is recorded once, pre-resize, at threshold/scale 1.0;
	// for this checkerboard it is exactly 0.5.
	const targetCoverage = 0.5

	covWith := u8Coverage(texWith.Levels[0].Buf, threshold)
	covWithout := u8Coverage(texWithout.Levels[0].Buf, threshold)

	distWith := covWith - targetCoverage
	if distWith < 0 {
		distWith = -distWith
	}
	distWithout := covWithout - targetCoverage
	if distWithout < 0 {
		distWithout = -distWithout
	}

	if distWith > distWithout {
		t.Fatalf("coverage-preserving bake (dist=%v) should not be worse than non-preserving bake (dist=%v); covWith=%v covWithout=%v",
			distWith, distWithout, covWith, covWithout)
	}
}

func TestBakeRejectsGarbageInput(t *testing.T) {
	t.Parallel()

	if _, err := Bake([]byte("not an image"), baseOptions(texture.EncodingRGBAU8)); err == nil {
		t.Fatal("expected error baking unrecognized bytes")
	}
}
