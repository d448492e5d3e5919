package alpha

import (
	"math"
	"testing"
)

func makePix(alphas ...float32) []float32 {
	pix := make([]float32, len(alphas)*4)
	for i, a := range alphas {
		pix[i*4+3] = a
	}
	return pix
}

func TestCoverage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		alphas    []float32
		hdr       bool
		threshold float64
		scale     float64
		want      float64
	}{
		{name: "all-above", alphas: []float32{1, 1, 1, 1}, threshold: 0.5, scale: 1.0, want: 1.0},
		{name: "all-below", alphas: []float32{0, 0, 0, 0}, threshold: 0.5, scale: 1.0, want: 0.0},
		{name: "half", alphas: []float32{1, 1, 0, 0}, threshold: 0.5, scale: 1.0, want: 0.5},
		{name: "scale-boosts", alphas: []float32{0.3, 0.3}, threshold: 0.5, scale: 2.0, want: 1.0},
		{name: "empty", alphas: nil, threshold: 0.5, scale: 1.0, want: 0.0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Coverage(makePix(tc.alphas...), tc.hdr, tc.threshold, tc.scale)
			if got != tc.want {
				t.Fatalf("Coverage() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestQuantizeThreshold(t *testing.T) {
	t.Parallel()

	if got := quantizeThreshold(0.5, true); got != 0.5 {
		t.Fatalf("hdr threshold passthrough = %v, want 0.5", got)
	}
	// LDR quantizes to the nearest /255 step.
	got := quantizeThreshold(0.5, false)
	want := math.Round(0.5*255) / 255
	if got != want {
		t.Fatalf("ldr quantizeThreshold(0.5) = %v, want %v", got, want)
	}
}

// TestPreserveConverges checks invariant 6 (§8): when a scale exists that
// reaches the target coverage exactly, Preserve finds it and leaves pix
// scaled to that coverage.
func TestPreserveConverges(t *testing.T) {
	t.Parallel()

	// 4 pixels at alpha 0.2, 0.4, 0.6, 0.8; threshold 0.5 means exactly 2
	// pass pre-scale (coverage 0.5). Target coverage 0.75 requires scaling
	// alpha up so 3 of 4 pass.
	pix := makePix(0.2, 0.4, 0.6, 0.8)
	threshold := 0.5
	target := 0.75

	scale := Preserve(pix, false, threshold, target, 32)
	if scale <= 0 {
		t.Fatalf("Preserve returned non-positive scale %v", scale)
	}

	got := Coverage(pix, false, threshold, 1.0) // pix already scaled in place
	if got != target {
		t.Fatalf("coverage after Preserve = %v, want %v", got, target)
	}
}

func TestPreserveNoStepsIsNoop(t *testing.T) {
	t.Parallel()

	pix := makePix(0.1, 0.9)
	orig := append([]float32(nil), pix...)
	scale := Preserve(pix, false, 0.5, 0.9, 0)
	if scale != 1.0 {
		t.Fatalf("Preserve with maxSteps=0 returned scale %v, want 1.0", scale)
	}
	for i := range pix {
		if pix[i] != orig[i] {
			t.Fatalf("Preserve with maxSteps=0 mutated pixel %d", i)
		}
	}
}

func TestApplyScaleClampsToOne(t *testing.T) {
	t.Parallel()

	pix := makePix(0.9)
	applyScale(pix, 5.0)
	if pix[3] != 1.0 {
		t.Fatalf("applyScale did not clamp alpha: got %v", pix[3])
	}
}
