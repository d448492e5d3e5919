package resize

import (
	"testing"

	"github.com/woozymasta/ktxbake/internal/texture"
)

func TestSizeToFitNoCapsPreservesSize(t *testing.T) {
	t.Parallel()

	w, h := SizeToFit(100, 50, Caps{})
	if w != 100 || h != 50 {
		t.Fatalf("SizeToFit with no caps = (%d,%d), want (100,50)", w, h)
	}
}

func TestSizeToFitNeverUpscales(t *testing.T) {
	t.Parallel()

	w, h := SizeToFit(10, 10, Caps{MaxSize: 1000})
	if w != 10 || h != 10 {
		t.Fatalf("SizeToFit should never upscale: got (%d,%d)", w, h)
	}
}

func TestSizeToFitPreservesAspect(t *testing.T) {
	t.Parallel()

	// 200x100 (2:1) capped to maxWidth=50 should yield 50x25.
	w, h := SizeToFit(200, 100, Caps{MaxWidth: 50})
	if w != 50 || h != 25 {
		t.Fatalf("SizeToFit(200,100,maxWidth=50) = (%d,%d), want (50,25)", w, h)
	}
}

func TestSizeToFitMaxSizeAppliesToBothAxes(t *testing.T) {
	t.Parallel()

	w, h := SizeToFit(64, 32, Caps{MaxSize: 16})
	if w > 16 || h > 16 {
		t.Fatalf("SizeToFit(64,32,maxSize=16) = (%d,%d), exceeds cap", w, h)
	}
	if w != 16 || h != 8 {
		t.Fatalf("SizeToFit(64,32,maxSize=16) = (%d,%d), want (16,8)", w, h)
	}
}

func TestSizeToFitMinimumOne(t *testing.T) {
	t.Parallel()

	w, h := SizeToFit(1, 1, Caps{MaxSize: 0})
	if w != 1 || h != 1 {
		t.Fatalf("SizeToFit(1,1) = (%d,%d), want (1,1)", w, h)
	}
}

func TestFilterResolveDefault(t *testing.T) {
	t.Parallel()

	if got := FilterDefault.Resolve(false); got != FilterMitchell {
		t.Errorf("FilterDefault.Resolve(false) = %v, want Mitchell", got)
	}
	if got := FilterDefault.Resolve(true); got != FilterTriangle {
		t.Errorf("FilterDefault.Resolve(true) = %v, want Triangle", got)
	}
}

func TestFilterSharpens(t *testing.T) {
	t.Parallel()

	sharpening := []Filter{FilterMitchell, FilterCatmullRom}
	nonSharpening := []Filter{FilterTriangle, FilterCubicBSpline, FilterPointSample}

	for _, f := range sharpening {
		if !f.Sharpens() {
			t.Errorf("%v.Sharpens() = false, want true", f)
		}
	}
	for _, f := range nonSharpening {
		if f.Sharpens() {
			t.Errorf("%v.Sharpens() = true, want false", f)
		}
	}
}

func TestParseFilterAndAddressMode(t *testing.T) {
	t.Parallel()

	if _, err := ParseFilter("bogus"); err == nil {
		t.Error("expected error for unknown filter")
	}
	if f, err := ParseFilter("mitchell"); err != nil || f != FilterMitchell {
		t.Errorf("ParseFilter(mitchell) = (%v,%v), want (Mitchell,nil)", f, err)
	}
	if _, err := ParseAddressMode("bogus"); err == nil {
		t.Error("expected error for unknown address mode")
	}
	if m, err := ParseAddressMode("wrap"); err != nil || m != AddressWrap {
		t.Errorf("ParseAddressMode(wrap) = (%v,%v), want (AddressWrap,nil)", m, err)
	}
}

func makeSolidImage(w, h uint32, r, g, b, a float32) texture.Image {
	pix := make([]float32, int(w)*int(h)*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i+0], pix[i+1], pix[i+2], pix[i+3] = r, g, b, a
	}
	return texture.NewHeapImage(w, h, texture.EncodingRGBAF32, texture.FloatsToBytes(pix))
}

func TestResizeDownscaleSolidColorStaysSolid(t *testing.T) {
	t.Parallel()

	src := makeSolidImage(8, 8, 1, 0.5, 0.25, 1)
	out, err := Resize(src, 4, 4, Options{FilterU: FilterTriangle, FilterV: FilterTriangle, AddressU: AddressClamp, AddressV: AddressClamp})
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if out.Width != 4 || out.Height != 4 {
		t.Fatalf("Resize output dims = %dx%d, want 4x4", out.Width, out.Height)
	}
	pix := texture.BytesToFloats(out.Buf)
	for i := 0; i < len(pix); i += 4 {
		if pix[i] < 0.99 || pix[i] > 1.01 {
			t.Fatalf("resized solid-color pixel[%d].R = %v, want ~1.0", i/4, pix[i])
		}
	}
}

// TestResizeClampsAfterSharpen covers testable property 8 (§8).
func TestResizeClampsAfterSharpen(t *testing.T) {
	t.Parallel()

	// A sharp edge (0 then 1) can overshoot negative with Mitchell's
	// ringing; verify no negative sample survives.
	w := uint32(8)
	pix := make([]float32, int(w)*4)
	for x := uint32(0); x < w; x++ {
		v := float32(0)
		if x >= w/2 {
			v = 1
		}
		pix[x*4+0] = v
		pix[x*4+3] = 1
	}
	src := texture.NewHeapImage(w, 1, texture.EncodingRGBAF32, texture.FloatsToBytes(pix))

	out, err := Resize(src, 16, 1, Options{FilterU: FilterMitchell, FilterV: FilterMitchell, AddressU: AddressClamp, AddressV: AddressClamp})
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	outPix := texture.BytesToFloats(out.Buf)
	for i, v := range outPix {
		if v < 0 {
			t.Fatalf("sample %d = %v, want >= 0 after sharpen clamp", i, v)
		}
	}
}

func TestResizeRejectsNonFloatSource(t *testing.T) {
	t.Parallel()

	src := texture.NewHeapImage(2, 2, texture.EncodingRGBAU8, make([]byte, 16))
	if _, err := Resize(src, 1, 1, Options{}); err == nil {
		t.Fatal("expected error resizing a non-rgba_f32 source")
	}
}

func TestAddressModeResolve(t *testing.T) {
	t.Parallel()

	if idx, ok := AddressClamp.resolve(-1, 10); !ok || idx != 0 {
		t.Errorf("Clamp.resolve(-1,10) = (%d,%v), want (0,true)", idx, ok)
	}
	if idx, ok := AddressClamp.resolve(10, 10); !ok || idx != 9 {
		t.Errorf("Clamp.resolve(10,10) = (%d,%v), want (9,true)", idx, ok)
	}
	if idx, ok := AddressWrap.resolve(-1, 10); !ok || idx != 9 {
		t.Errorf("Wrap.resolve(-1,10) = (%d,%v), want (9,true)", idx, ok)
	}
	if idx, ok := AddressWrap.resolve(10, 10); !ok || idx != 0 {
		t.Errorf("Wrap.resolve(10,10) = (%d,%v), want (0,true)", idx, ok)
	}
	if _, ok := AddressZero.resolve(-1, 10); ok {
		t.Error("Zero.resolve(-1,10) should report !ok")
	}
	if idx, ok := AddressReflect.resolve(-1, 10); !ok || idx != 0 {
		t.Errorf("Reflect.resolve(-1,10) = (%d,%v), want (0,true)", idx, ok)
	}
}
