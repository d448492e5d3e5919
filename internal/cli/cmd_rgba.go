package cli

import "github.com/woozymasta/ktxbake/internal/texture"

// CmdRGBAU8 bakes a KTX2 with an 8-bit RGBA level chain.
type CmdRGBAU8 struct {
	SRGB   bool        `long:"srgb" description:"Store sRGB-gamma color channels instead of linear" yaml:"srgb"`
	Common CommonFlags `group:"Bake" yaml:"bake"`

	Args struct {
		Input  string `positional-arg-name:"input" description:"Source image" required:"yes" yaml:"input"`
		Output string `positional-arg-name:"output" description:"Output .ktx2 file" required:"yes" yaml:"output"`
	} `positional-args:"yes" required:"yes" yaml:"args"`
}

// Execute runs the rgba-u8 command.
func (c *CmdRGBAU8) Execute(args []string) error {
	target := texture.EncodingRGBAU8
	if c.SRGB {
		target = texture.EncodingRGBASRGBU8
	}
	return runBake(c.Args.Input, c.Args.Output, c.Common, target, zeroBC7Options())
}

// CmdRGBAF32 bakes a KTX2 with a linear float32 RGBA level chain.
type CmdRGBAF32 struct {
	Common CommonFlags `group:"Bake" yaml:"bake"`

	Args struct {
		Input  string `positional-arg-name:"input" description:"Source image" required:"yes" yaml:"input"`
		Output string `positional-arg-name:"output" description:"Output .ktx2 file" required:"yes" yaml:"output"`
	} `positional-args:"yes" required:"yes" yaml:"args"`
}

// Execute runs the rgba-f32 command.
func (c *CmdRGBAF32) Execute(args []string) error {
	return runBake(c.Args.Input, c.Args.Output, c.Common, texture.EncodingRGBAF32, zeroBC7Options())
}
