package mipmap

import (
	"testing"

	"github.com/woozymasta/ktxbake/internal/resize"
	"github.com/woozymasta/ktxbake/internal/texture"
)

func makeSource(w, h uint32) texture.Image {
	pix := make([]float32, int(w)*int(h)*4)
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 1
	}
	return texture.NewHeapImage(w, h, texture.EncodingRGBAF32, texture.FloatsToBytes(pix))
}

// TestMipmapShape covers testable property 1 (§8): level i has dimensions
// (max(1, level0.W>>i), max(1, level0.H>>i)), terminating once both sides
// are <= block_size.
func TestMipmapShape(t *testing.T) {
	t.Parallel()

	src := makeSource(16, 16)
	gen := New(src, 1, resize.Options{FilterU: resize.FilterTriangle, FilterV: resize.FilterTriangle})

	want := []struct{ w, h uint32 }{{8, 8}, {4, 4}, {2, 2}, {1, 1}}
	var got []struct{ w, h uint32 }
	for gen.HasNext() {
		lvl, err := gen.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		got = append(got, struct{ w, h uint32 }{lvl.Width, lvl.Height})
	}

	if len(got) != len(want) {
		t.Fatalf("got %d levels, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("level %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMipmapStopsAtBlockSize(t *testing.T) {
	t.Parallel()

	src := makeSource(16, 16)
	gen := New(src, 4, resize.Options{FilterU: resize.FilterTriangle, FilterV: resize.FilterTriangle})

	var levels int
	for gen.HasNext() {
		if _, err := gen.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
		levels++
	}
	// 16 -> 8 -> 4 (stop: both sides == blockSize 4).
	if levels != 2 {
		t.Fatalf("got %d levels, want 2 (stop at block size 4)", levels)
	}
}

func TestMipmapNonSquareHalvesIndependently(t *testing.T) {
	t.Parallel()

	src := makeSource(8, 2)
	gen := New(src, 1, resize.Options{FilterU: resize.FilterTriangle, FilterV: resize.FilterTriangle})

	lvl1, err := gen.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if lvl1.Width != 4 || lvl1.Height != 1 {
		t.Fatalf("level 1 = %dx%d, want 4x1", lvl1.Width, lvl1.Height)
	}
	lvl2, err := gen.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if lvl2.Width != 2 || lvl2.Height != 1 {
		t.Fatalf("level 2 = %dx%d, want 2x1 (height floors at 1)", lvl2.Width, lvl2.Height)
	}
}

func TestMipmapExhaustedReturnsError(t *testing.T) {
	t.Parallel()

	src := makeSource(1, 1)
	gen := New(src, 1, resize.Options{})
	if gen.HasNext() {
		t.Fatal("1x1 source at block size 1 should have no next level")
	}
	if _, err := gen.Next(); err == nil {
		t.Fatal("expected error calling Next on exhausted generator")
	}
}
