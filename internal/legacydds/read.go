package legacydds

import (
	"encoding/binary"
	"fmt"
	"io"
)

// readDWORD reads one little-endian 32-bit value.
func readDWORD(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadHeader reads a DDS header from r, including the leading 4-byte magic.
// This is the only supported operation on a DDS stream: legacydds is a
// read-only interop crate (spec §4.H), never a source the KTX2 pipeline
// feeds from.
func ReadHeader(r io.Reader) (*Header, error) {
	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("legacydds: reading magic: %w", err)
	}
	if string(magic) != Magic {
		return nil, fmt.Errorf("legacydds: invalid magic: expected %q, got %q", Magic, string(magic))
	}

	size, err := readDWORD(r)
	if err != nil {
		return nil, fmt.Errorf("legacydds: reading header size: %w", err)
	}
	if size != HeaderSize {
		return nil, fmt.Errorf("legacydds: invalid header size: expected %d, got %d", HeaderSize, size)
	}

	var h Header
	h.Size = size
	fields := []*uint32{&h.Flags, &h.Height, &h.Width, &h.PitchOrLinearSize, &h.Depth, &h.MipMapCount}
	names := []string{"flags", "height", "width", "pitchOrLinearSize", "depth", "mipMapCount"}
	for i, f := range fields {
		if *f, err = readDWORD(r); err != nil {
			return nil, fmt.Errorf("legacydds: reading %s: %w", names[i], err)
		}
	}

	for i := 0; i < 11; i++ {
		if h.Reserved1[i], err = readDWORD(r); err != nil {
			return nil, fmt.Errorf("legacydds: reading reserved1[%d]: %w", i, err)
		}
	}

	pfSize, err := readDWORD(r)
	if err != nil {
		return nil, fmt.Errorf("legacydds: reading pixel format size: %w", err)
	}
	if pfSize != PixelFormatSize {
		return nil, fmt.Errorf("legacydds: invalid pixel format size: expected %d, got %d", PixelFormatSize, pfSize)
	}
	h.PixelFormat.Size = pfSize

	pfFields := []*uint32{
		&h.PixelFormat.Flags, &h.PixelFormat.FourCC, &h.PixelFormat.RGBBitCount,
		&h.PixelFormat.RBitMask, &h.PixelFormat.GBitMask, &h.PixelFormat.BBitMask, &h.PixelFormat.ABitMask,
	}
	pfNames := []string{"flags", "fourCC", "rgbBitCount", "rBitMask", "gBitMask", "bBitMask", "aBitMask"}
	for i, f := range pfFields {
		if *f, err = readDWORD(r); err != nil {
			return nil, fmt.Errorf("legacydds: reading pixel format %s: %w", pfNames[i], err)
		}
	}

	capsFields := []*uint32{&h.Caps, &h.Caps2, &h.Caps3, &h.Caps4, &h.Reserved2}
	capsNames := []string{"caps", "caps2", "caps3", "caps4", "reserved2"}
	for i, f := range capsFields {
		if *f, err = readDWORD(r); err != nil {
			return nil, fmt.Errorf("legacydds: reading %s: %w", capsNames[i], err)
		}
	}
	if h.Reserved2 != 0 {
		return nil, fmt.Errorf("legacydds: invalid header: reserved2 is not zero")
	}

	if h.Flags&HeaderFlagsTexture != HeaderFlagsTexture {
		return nil, fmt.Errorf("legacydds: invalid header flags: required fields not set (flags: 0x%x)", h.Flags)
	}

	return &h, nil
}

// ReadHeaderDx10 reads the trailing HeaderDx10 extension following header,
// if header.HasDX10Extension() is true; returns (nil, nil) otherwise.
func ReadHeaderDx10(r io.Reader, header *Header) (*HeaderDx10, error) {
	if !header.HasDX10Extension() {
		return nil, nil
	}

	var dx10 HeaderDx10
	fields := []*uint32{&dx10.DXGIFormat, &dx10.ResourceDimension, &dx10.MiscFlag, &dx10.ArraySize, &dx10.MiscFlags2}
	names := []string{"dxgiFormat", "resourceDimension", "miscFlag", "arraySize", "miscFlags2"}
	for i, f := range fields {
		v, err := readDWORD(r)
		if err != nil {
			return nil, fmt.Errorf("legacydds: reading %s: %w", names[i], err)
		}
		*f = v
	}
	return &dx10, nil
}
