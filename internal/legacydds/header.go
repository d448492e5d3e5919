// Package legacydds implements the Legacy DDS Types collaborator (spec
// §1/§4.H): a read-only data layout for DDS headers and the DXT10
// extension, kept around for interop with other baked-asset tools that
// still hand ktxbake a legacy .dds file to inspect or migrate, but never
// consulted by the KTX2 conversion pipeline (A-G) itself.
//
// Adapted directly from the teacher's internal/dds package (struct layout,
// flag constants, magic/size sentinels unchanged — this is exactly the
// "read-only format crate" the teacher already ships); the only changes are
// package name, doc comments, and dropping the teacher's CreateHeaderRGBA8
// writer, which belonged to imageset-packer's DDS *output* path, a format
// this module's Non-goals explicitly exclude.
package legacydds

const (
	// Magic is the 4-byte DDS file signature.
	Magic = "DDS "

	HeaderSize      = 124 // Size of the DDS_HEADER structure.
	PixelFormatSize = 32  // Size of the DDS_PIXELFORMAT structure.

	// DDS_HEADER flags.
	DCaps        = 0x1
	DHeight      = 0x2
	DWidth       = 0x4
	DPitch       = 0x8
	DPixelFormat = 0x1000
	DMipMapCount = 0x20000
	DLinearSize  = 0x80000
	DDepth       = 0x800000

	// DDS_PIXELFORMAT flags.
	PFAlphaPixels = 0x1
	PFAlpha       = 0x2
	PFFourCC      = 0x4
	PFRGB         = 0x40
	PFYUV         = 0x200
	PFLuminance   = 0x20000

	// DDS_CAPS flags.
	CapsComplex  = 0x8
	CapsTexture  = 0x1000
	CapsMipMap   = 0x400000
	Caps2Cubemap = 0x200

	HeaderFlagsTexture    = DCaps | DHeight | DWidth | DPixelFormat
	HeaderFlagsMipMap     = DMipMapCount
	HeaderFlagsVolume     = DDepth
	HeaderFlagsPitch      = DPitch
	HeaderFlagsLinearSize = DLinearSize

	// FourCCDX10 is the "DX10" FourCC, little-endian, marking a trailing
	// HeaderDx10 extension.
	FourCCDX10 = 0x30315844
)

// PixelFormat is the on-disk DDS_PIXELFORMAT structure.
type PixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      uint32
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

// Header is the on-disk DDS_HEADER structure.
type Header struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       PixelFormat
	Caps              uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

// HasMipMaps reports whether h's flags/caps mark a mip chain present.
func (h *Header) HasMipMaps() bool {
	return h.Flags&DMipMapCount != 0 && h.Caps&CapsMipMap != 0
}

// IsCubemap reports whether h's Caps2 marks a cubemap surface.
func (h *Header) IsCubemap() bool {
	return h.Caps2&Caps2Cubemap != 0
}

// HasDX10Extension reports whether h's pixel format FourCC marks a trailing
// HeaderDx10 block.
func (h *Header) HasDX10Extension() bool {
	return h.PixelFormat.Flags&PFFourCC != 0 && h.PixelFormat.FourCC == FourCCDX10
}

// HeaderDx10 is the on-disk DDS_HEADER_DXT10 extension structure.
type HeaderDx10 struct {
	DXGIFormat        uint32
	ResourceDimension uint32
	MiscFlag          uint32
	ArraySize         uint32
	MiscFlags2        uint32
}
