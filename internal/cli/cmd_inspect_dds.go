package cli

import (
	"fmt"
	"os"

	"github.com/woozymasta/ktxbake/internal/legacydds"
)

// CmdInspectDDS reads and prints a legacy .dds file's header, the read-only
// interop surface spec §4.H describes: it never feeds the KTX2 bake
// pipeline, only reports what another baked-asset tool's DDS output
// contains.
type CmdInspectDDS struct {
	Args struct {
		Path string `positional-arg-name:"path" description:"Path to a .dds file" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs the inspect-dds command.
func (c *CmdInspectDDS) Execute(args []string) error {
	f, err := os.Open(c.Args.Path)
	if err != nil {
		return fmt.Errorf("open %q: %w", c.Args.Path, err)
	}
	defer func() { _ = f.Close() }()

	h, err := legacydds.ReadHeader(f)
	if err != nil {
		return fmt.Errorf("read dds header: %w", err)
	}

	fmt.Printf("%s: %dx%d, mipmaps=%v, cubemap=%v, pitchOrLinearSize=%d\n",
		c.Args.Path, h.Width, h.Height, h.HasMipMaps(), h.IsCubemap(), h.PitchOrLinearSize)

	if h.HasDX10Extension() {
		dx10, err := legacydds.ReadHeaderDx10(f, h)
		if err != nil {
			return fmt.Errorf("read dx10 header: %w", err)
		}
		fmt.Printf("  dxgiFormat=%d resourceDimension=%d arraySize=%d\n",
			dx10.DXGIFormat, dx10.ResourceDimension, dx10.ArraySize)
	} else if h.PixelFormat.Flags&legacydds.PFFourCC != 0 {
		fmt.Printf("  fourCC=0x%x\n", h.PixelFormat.FourCC)
	} else {
		fmt.Printf("  rgbBitCount=%d rMask=0x%x gMask=0x%x bMask=0x%x aMask=0x%x\n",
			h.PixelFormat.RGBBitCount, h.PixelFormat.RBitMask, h.PixelFormat.GBitMask,
			h.PixelFormat.BBitMask, h.PixelFormat.ABitMask)
	}

	return nil
}
