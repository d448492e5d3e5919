package cli

import (
	"github.com/woozymasta/ktxbake/internal/bc7"
	"github.com/woozymasta/ktxbake/internal/texture"
)

// BC7Flags configures the BC7 collaborator's parameter surface (spec §4.E).
type BC7Flags struct {
	UberLevel           int      `long:"uber-level" description:"Encoder exhaustiveness, 0..4" default:"1" yaml:"uber_level"`
	MaxPartitionsToScan int      `long:"max-partitions" description:"Max partitions to scan, 0..64" default:"64" yaml:"max_partitions"`
	MaxThreads          int      `long:"max-threads" description:"Worker threads, 0=auto" default:"0" yaml:"max_threads"`
	Perceptual          bool     `long:"perceptual" description:"Use a perceptual (green-weighted) error metric" yaml:"perceptual"`
	RDO                 RDOFlags `group:"RDO" yaml:"rdo"`
}

func (f BC7Flags) toBC7Options() bc7.Options {
	maxThreads := f.MaxThreads
	if maxThreads <= 0 {
		maxThreads = bc7.DefaultMaxThreads()
	}
	return bc7.Options{
		UberLevel:           f.UberLevel,
		MaxPartitionsToScan: f.MaxPartitionsToScan,
		MaxThreads:          maxThreads,
		Perceptual:          f.Perceptual,
		RDO:                 f.RDO.toBC7RDO(),
	}
}

func zeroBC7Options() bc7.Options {
	return bc7.Options{UberLevel: 0, MaxPartitionsToScan: 0, MaxThreads: 1}
}

// CmdBC7 bakes a KTX2 with a BC7-compressed, linear-transfer level chain.
type CmdBC7 struct {
	BC7    BC7Flags    `group:"BC7" yaml:"bc7"`
	Common CommonFlags `group:"Bake" yaml:"bake"`

	Args struct {
		Input  string `positional-arg-name:"input" description:"Source image" required:"yes" yaml:"input"`
		Output string `positional-arg-name:"output" description:"Output .ktx2 file" required:"yes" yaml:"output"`
	} `positional-args:"yes" required:"yes" yaml:"args"`
}

// Execute runs the bc7 command.
func (c *CmdBC7) Execute(args []string) error {
	return runBake(c.Args.Input, c.Args.Output, c.Common, texture.EncodingBC7, c.BC7.toBC7Options())
}

// CmdBC7SRGB bakes a KTX2 with a BC7-compressed, sRGB-transfer level chain.
type CmdBC7SRGB struct {
	BC7    BC7Flags    `group:"BC7" yaml:"bc7"`
	Common CommonFlags `group:"Bake" yaml:"bake"`

	Args struct {
		Input  string `positional-arg-name:"input" description:"Source image" required:"yes" yaml:"input"`
		Output string `positional-arg-name:"output" description:"Output .ktx2 file" required:"yes" yaml:"output"`
	} `positional-args:"yes" required:"yes" yaml:"args"`
}

// Execute runs the bc7-srgb command.
func (c *CmdBC7SRGB) Execute(args []string) error {
	return runBake(c.Args.Input, c.Args.Output, c.Common, texture.EncodingBC7SRGB, c.BC7.toBC7Options())
}
