package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
)

// Root defines global CLI flags.
type Root struct{}

// CmdVersion prints build metadata.
type CmdVersion struct{}

// Execute runs the version command.
func (c *CmdVersion) Execute(args []string) error {
	fmt.Println("ktxbake (dev build)")
	return nil
}

// Run parses arguments and executes the selected command.
func Run(args []string) error {
	var root Root

	parser := flags.NewParser(&root, flags.Default)
	parser.Name = filepath.Base(os.Args[0])
	prog := parser.Name

	commands := []struct {
		name, short, long string
		data              interface{}
	}{
		{"rgba-u8", "Bake a KTX2 with an 8-bit RGBA level chain", fmt.Sprintf(
			"Bake an image into an uncompressed rgba_u8/rgba_srgb_u8 KTX2.\n\nExamples:\n  %s rgba-u8 icon.png icon.ktx2\n  %s rgba-u8 --srgb --mipmaps albedo.png albedo.ktx2", prog, prog), &CmdRGBAU8{}},
		{"rgba-f32", "Bake a KTX2 with a linear float32 RGBA level chain", fmt.Sprintf(
			"Bake an image into an uncompressed rgba_f32 KTX2.\n\nExamples:\n  %s rgba-f32 hdri.hdr env.ktx2", prog), &CmdRGBAF32{}},
		{"bc7", "Bake a KTX2 with a BC7-compressed, linear-transfer level chain", fmt.Sprintf(
			"Bake an image into a BC7-compressed KTX2.\n\nExamples:\n  %s bc7 --mipmaps diffuse.png diffuse.ktx2", prog), &CmdBC7{}},
		{"bc7-srgb", "Bake a KTX2 with a BC7-compressed, sRGB-transfer level chain", fmt.Sprintf(
			"Bake an image into a BC7-compressed, sRGB-transfer KTX2.\n\nExamples:\n  %s bc7-srgb --mipmaps albedo.png albedo.ktx2", prog), &CmdBC7SRGB{}},
		{"build", "Build a batch of bake jobs from .ktxbake.yaml", fmt.Sprintf(
			"Run multiple bake jobs from a config file.\n\nExamples:\n  %s build ./my-ktxbake.yaml\n  %s build --project albedo --project normal", prog, prog), &CmdBuild{}},
		{"inspect-dds", "Print a legacy .dds file's header fields", fmt.Sprintf(
			"Read-only interop with other baked-asset tools' DDS output.\n\nExamples:\n  %s inspect-dds legacy.dds", prog), &CmdInspectDDS{}},
		{"version", "Print build metadata", fmt.Sprintf("Show build information.\n\nExamples:\n  %s version", prog), &CmdVersion{}},
	}

	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			return err
		}
	}

	_, err := parser.ParseArgs(args)
	if err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	return nil
}
