// Package cli implements the ktxbake command-line interface: one subcommand
// per output encoding (rgba-u8, rgba-f32, bc7, bc7-srgb) plus a batch
// "build" command, grouped flag structs, and YAML-driven project lists.
// Grounded on the teacher's internal/cli package: CmdPack's flag-group
// composition (PackPackingFlags/PackInputFlags via `group:"..."` tags dual
// tagged for both go-flags and yaml), CmdBuild's config-file/--project
// selection loop, and CmdPack's cache-skip wiring (now internal/cache).
package cli

import (
	"fmt"

	"github.com/woozymasta/ktxbake/internal/bc7"
	"github.com/woozymasta/ktxbake/internal/loader"
	"github.com/woozymasta/ktxbake/internal/pipeline"
	"github.com/woozymasta/ktxbake/internal/resize"
	"github.com/woozymasta/ktxbake/internal/supercompress"
)

// CommonFlags are the options shared by every encode subcommand, mirroring
// the teacher's PackPackingFlags/PackInputFlags grouping.
type CommonFlags struct {
	ColorSpace     string  `long:"color-space" description:"Declared source color space" choice:"linear" choice:"srgb" choice:"hdr" default:"srgb" yaml:"color_space"`
	AlphaMode      string  `long:"alpha-mode" description:"How to treat the alpha channel" choice:"straight" choice:"premultiplied" choice:"cutout" default:"straight" yaml:"alpha_mode"`
	AlphaThreshold float64 `long:"alpha-threshold" description:"Alpha-test cutoff (alpha-mode=cutout)" default:"0.5" yaml:"alpha_threshold"`

	Mipmaps          bool `long:"mipmaps" description:"Generate a full mip chain" yaml:"mipmaps"`
	PreserveCoverage bool `long:"preserve-alpha-coverage" description:"Preserve alpha-test coverage across mip levels" yaml:"preserve_alpha_coverage"`
	CoverageSteps    int  `long:"coverage-steps" description:"Binary-search iterations for alpha-coverage preservation" default:"8" yaml:"coverage_steps"`

	FilterU  string `long:"filter-u" description:"Horizontal resample filter" choice:"triangle" choice:"cubic-b-spline" choice:"catmull-rom" choice:"mitchell" choice:"point-sample" default:"mitchell" yaml:"filter_u"`
	FilterV  string `long:"filter-v" description:"Vertical resample filter" choice:"triangle" choice:"cubic-b-spline" choice:"catmull-rom" choice:"mitchell" choice:"point-sample" default:"mitchell" yaml:"filter_v"`
	AddressU string `long:"address-u" description:"Horizontal out-of-bounds address mode" choice:"clamp" choice:"reflect" choice:"wrap" choice:"zero" default:"clamp" yaml:"address_u"`
	AddressV string `long:"address-v" description:"Vertical out-of-bounds address mode" choice:"clamp" choice:"reflect" choice:"wrap" choice:"zero" default:"clamp" yaml:"address_v"`

	MaxSize   uint32 `long:"max-size" description:"Cap both dimensions (0=no cap)" yaml:"max_size"`
	MaxWidth  uint32 `long:"max-width" description:"Cap width (0=no cap)" yaml:"max_width"`
	MaxHeight uint32 `long:"max-height" description:"Cap height (0=no cap)" yaml:"max_height"`

	// Zlib supercompresses each level when set; empty means disabled. Spec
	// §6 documents this surface as `--zlib {fastest|smallest|4..9}`.
	Zlib string `long:"zlib" description:"Supercompress each level with zlib" choice:"fastest" choice:"smallest" choice:"4" choice:"5" choice:"6" choice:"7" choice:"8" choice:"9" yaml:"zlib"`

	SkipUnchanged bool `short:"u" long:"skip-unchanged" description:"Skip writing when the input and options are unchanged" yaml:"skip_unchanged"`
	Force         bool `short:"f" long:"force" description:"Overwrite an existing output file" yaml:"force"`

	LegacyEDDS         bool `long:"legacy-edds" description:"Also emit a secondary BGRA8/LZ4 EDDS alongside the KTX2 output" yaml:"legacy_edds"`
	LegacyEDDSMipmaps  int  `long:"legacy-edds-mipmaps" description:"Mip levels for the legacy EDDS output, 0=full chain" yaml:"legacy_edds_mipmaps"`
}

func (c CommonFlags) toPipelineOptions() (pipeline.Options, error) {
	cs, err := loader.ParseColorSpace(c.ColorSpace)
	if err != nil {
		return pipeline.Options{}, err
	}
	policy, err := parseAlphaPolicy(c.AlphaMode, c.AlphaThreshold)
	if err != nil {
		return pipeline.Options{}, err
	}
	fu, err := resize.ParseFilter(c.FilterU)
	if err != nil {
		return pipeline.Options{}, err
	}
	fv, err := resize.ParseFilter(c.FilterV)
	if err != nil {
		return pipeline.Options{}, err
	}
	au, err := resize.ParseAddressMode(c.AddressU)
	if err != nil {
		return pipeline.Options{}, err
	}
	av, err := resize.ParseAddressMode(c.AddressV)
	if err != nil {
		return pipeline.Options{}, err
	}
	doSupercompress := c.Zlib != ""
	var zlibLevel supercompress.Level
	if doSupercompress {
		zlibLevel, err = supercompress.ParseLevel(c.Zlib)
		if err != nil {
			return pipeline.Options{}, err
		}
	}

	steps := 0
	if c.PreserveCoverage {
		steps = c.CoverageSteps
	}

	return pipeline.Options{
		ColorSpace:    cs,
		AlphaPolicy:   policy,
		Caps:          resize.Caps{MaxSize: c.MaxSize, MaxWidth: c.MaxWidth, MaxHeight: c.MaxHeight},
		FilterU:       fu,
		FilterV:       fv,
		AddressU:      au,
		AddressV:      av,
		Mipmaps:       c.Mipmaps,
		CoverageSteps: steps,
		Supercompress: doSupercompress,
		ZlibLevel:     zlibLevel,
	}, nil
}

func parseAlphaPolicy(mode string, threshold float64) (loader.AlphaPolicy, error) {
	switch mode {
	case "straight":
		return loader.AlphaPolicy{Kind: loader.AlphaStraight}, nil
	case "premultiplied":
		return loader.AlphaPolicy{Kind: loader.AlphaPremultiplied}, nil
	case "cutout":
		return loader.AlphaPolicy{Kind: loader.AlphaCutout, Threshold: threshold}, nil
	default:
		return loader.AlphaPolicy{}, fmt.Errorf("unknown alpha-mode %q", mode)
	}
}

// RDOFlags configures the BC7 rate-distortion-optimization pass.
type RDOFlags struct {
	Enabled               bool    `long:"rdo" description:"Enable the BC7 RDO pass" yaml:"enabled"`
	Lambda                float64 `long:"rdo-lambda" description:"RDO lambda, 0..500" default:"0" yaml:"lambda"`
	LookbackWindow        int     `long:"rdo-lookback-window" description:"RDO lookback window, >=8" default:"8" yaml:"lookback_window"`
	SmoothBlockErrorScale float64 `long:"rdo-smooth-block-error-scale" description:"RDO smooth-block error scale, 1..500" default:"1" yaml:"smooth_block_error_scale"`
	MaxSmoothBlockStdDev  float64 `long:"rdo-max-smooth-block-std-dev" description:"RDO max smooth-block std dev, 0.000125..256" default:"18" yaml:"max_smooth_block_std_dev"`
}

func (r RDOFlags) toBC7RDO() *bc7.RDOOptions {
	if !r.Enabled {
		return nil
	}
	return &bc7.RDOOptions{
		Lambda:                r.Lambda,
		LookbackWindow:        r.LookbackWindow,
		SmoothBlockErrorScale: r.SmoothBlockErrorScale,
		MaxSmoothBlockStdDev:  r.MaxSmoothBlockStdDev,
	}
}
