// Package alpha implements alpha-coverage computation and the binary-search
// preservation pass that keeps an alpha-test cutout's coverage stable across
// mip levels (spec §4.D).
package alpha

import "math"

// Coverage counts the fraction of pixels whose alpha, scaled by scale,
// exceeds the quantized threshold q(threshold). q rounds to the nearest
// representable LDR alpha (round(x*255)/255) for non-HDR images, or passes
// threshold through unchanged for HDR images, per spec §4.D.
func Coverage(pix []float32, hdr bool, threshold, scale float64) float64 {
	if len(pix) == 0 {
		return 0
	}

	q := quantizeThreshold(threshold, hdr)

	n := len(pix) / 4
	pass := 0
	for i := 0; i < n; i++ {
		a := float64(pix[i*4+3]) * scale
		if a > q {
			pass++
		}
	}
	return float64(pass) / float64(n)
}

// quantizeThreshold implements q(x) from spec §4.D.
func quantizeThreshold(threshold float64, hdr bool) float64 {
	if hdr {
		return threshold
	}
	return math.Round(threshold*255) / 255
}

// Preserve runs the binary search of spec §4.D over at most maxSteps
// iterations and, if it finds a beneficial scale, multiplies every alpha
// sample by it (clamped to 1.0) in place. Returns the scale actually
// applied (1.0 if none was beneficial).
func Preserve(pix []float32, hdr bool, threshold, targetCoverage float64, maxSteps int) float64 {
	if len(pix) == 0 || maxSteps <= 0 {
		return 1.0
	}

	lower, upper := 0.0, 1.0
	cur := threshold
	bestScale := 1.0
	bestDist := math.Inf(1)

steps:
	for step := 0; step < maxSteps; step++ {
		var scale float64
		if cur == 0 {
			scale = 1.0
		} else {
			scale = threshold / cur
		}

		cov := Coverage(pix, hdr, threshold, scale)
		dist := math.Abs(cov - targetCoverage)
		if dist < bestDist {
			bestDist = dist
			bestScale = scale
		}

		switch {
		case cov < targetCoverage:
			upper = cur
		case cov > targetCoverage:
			lower = cur
		default:
			break steps
		}
		cur = (lower + upper) / 2
	}

	if bestScale != 1.0 {
		applyScale(pix, bestScale)
	}
	return bestScale
}

// applyScale multiplies every alpha sample by scale, clamped to 1.0.
func applyScale(pix []float32, scale float64) {
	for i := 3; i < len(pix); i += 4 {
		v := float64(pix[i]) * scale
		if v > 1.0 {
			v = 1.0
		}
		pix[i] = float32(v)
	}
}
