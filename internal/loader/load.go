package loader

import (
	"fmt"
	"math"

	"github.com/woozymasta/ktxbake/internal/alpha"
	"github.com/woozymasta/ktxbake/internal/texture"
)

// AlphaPolicyKind selects how the loaded image's alpha channel is treated.
type AlphaPolicyKind int

const (
	// AlphaStraight: alpha is ordinary transparency, not premultiplied.
	AlphaStraight AlphaPolicyKind = iota
	// AlphaPremultiplied: alpha is ordinary transparency, already (or to
	// be) premultiplied.
	AlphaPremultiplied
	// AlphaCutout: alpha is an alpha-test cutout; target coverage at
	// Threshold is recorded for later preservation across mip levels.
	AlphaCutout
)

// AlphaPolicy is the §4.A `alpha_policy` input to Load.
type AlphaPolicy struct {
	Kind      AlphaPolicyKind
	Threshold float64 // meaningful only for AlphaCutout
}

// Premultiplied reports whether this policy requires RGB·A premultiplication
// on load.
func (p AlphaPolicy) Premultiplied() bool {
	return p.Kind == AlphaPremultiplied || p.Kind == AlphaCutout
}

// Load decodes encoded image bytes into a linear float32 RGBA texture.Image
// per spec §4.A.
func Load(encodedBytes []byte, declared ColorSpace, policy AlphaPolicy) (texture.Image, error) {
	d, err := decodeAny(encodedBytes)
	if err != nil {
		return texture.Image{}, err
	}

	if d.hdr != (declared == ColorSpaceHDR) {
		return texture.Image{}, fmt.Errorf(
			"%w: declared color space %s but source is %s",
			texture.ErrInvalidInput, declared, hdrLabel(d.hdr),
		)
	}

	if d.width <= 0 || d.height <= 0 {
		return texture.Image{}, fmt.Errorf("%w: decoder produced no pixels", texture.ErrInvalidInput)
	}

	pix := toLinearFloat(d, declared)

	img := texture.NewHeapImage(uint32(d.width), uint32(d.height), texture.EncodingRGBAF32, texture.FloatsToBytes(pix))
	img.SetReleaser(texture.OwnerDecoderArena, texture.NoopReleaser)
	img.HDR = d.hdr

	switch policy.Kind {
	case AlphaStraight:
		// Straight alpha is transparency that is NOT premultiplied; model
		// it as AlphaOther so Premultiplied() (and downstream resize
		// premultiply-on-entry assumptions) stay false. Premultiplication
		// is applied below only for AlphaPremultiplied/AlphaCutout.
		img.Alpha = texture.Alpha{Kind: texture.AlphaOther}
	case AlphaPremultiplied:
		img.Alpha = texture.Alpha{Kind: texture.AlphaOpacity}
	case AlphaCutout:
		img.Alpha = texture.Alpha{Kind: texture.AlphaTest, Threshold: policy.Threshold}
	}

	if policy.Premultiplied() {
		premultiply(pix)
		img.Buf = texture.FloatsToBytes(pix)
	}

	if policy.Kind == AlphaCutout {
		coverage := alpha.Coverage(pix, d.hdr, policy.Threshold, 1.0)
		img.Alpha = img.Alpha.WithTargetCoverage(coverage)
	}

	return img, nil
}

func hdrLabel(hdr bool) string {
	if hdr {
		return "hdr"
	}
	return "non-hdr"
}

// toLinearFloat applies per-channel inverse gamma to LDR samples, or passes
// HDR samples through unchanged (already linear-light per spec §4.A).
func toLinearFloat(d decoded, declared ColorSpace) []float32 {
	if d.hdr {
		return d.linear
	}

	gamma := declared.gamma()
	out := make([]float32, d.width*d.height*4)
	for i := 0; i < len(d.ldr); i += 4 {
		for c := 0; c < 3; c++ {
			v := float64(d.ldr[i+c]) / 255.0
			if gamma != 1.0 {
				v = math.Pow(v, gamma)
			}
			out[i+c] = float32(v)
		}
		out[i+3] = float32(d.ldr[i+3]) / 255.0
	}
	return out
}

// premultiply multiplies R,G,B by A in place; A is left unchanged.
func premultiply(pix []float32) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := pix[i+3]
		pix[i+0] *= a
		pix[i+1] *= a
		pix[i+2] *= a
	}
}
