package loader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// hdrMagic is the Radiance/RGBE file signature. None of the pack's example
// repos ship a Radiance decoder (the closest neighbors, vearutop/ultrahdr
// and FreakyLittleDawg/go-openexr, target UltraHDR JPEG and OpenEXR
// respectively), so this is a direct, from-spec implementation rather than
// an adaptation — see DESIGN.md.
var hdrMagic = []byte("#?")

// isHDR reports whether data looks like a Radiance HDR/RGBE stream.
func isHDR(data []byte) bool {
	return bytes.HasPrefix(data, hdrMagic)
}

// decodeHDR decodes a Radiance .hdr (RGBE) stream into linear float32 RGBA.
// Supports the classic scanline RLE encoding used by virtually every
// encoder in the wild (Radiance, ImageMagick, Blender, etc.).
func decodeHDR(data []byte) (pix []float32, width, height int, err error) {
	r := bufio.NewReader(bytes.NewReader(data))

	if err := skipHeaderLines(r); err != nil {
		return nil, 0, 0, err
	}

	width, height, err = readResolutionLine(r)
	if err != nil {
		return nil, 0, 0, err
	}
	if width <= 0 || height <= 0 {
		return nil, 0, 0, fmt.Errorf("hdr: invalid resolution %dx%d", width, height)
	}

	pix = make([]float32, width*height*4)
	scan := make([]byte, width*4)

	for y := 0; y < height; y++ {
		if err := readScanline(r, scan, width); err != nil {
			return nil, 0, 0, fmt.Errorf("hdr: scanline %d: %w", y, err)
		}
		rowOff := y * width * 4
		for x := 0; x < width; x++ {
			rr, gg, bb, ee := scan[x*4], scan[x*4+1], scan[x*4+2], scan[x*4+3]
			r32, g32, b32 := rgbeToFloat(rr, gg, bb, ee)
			o := rowOff + x*4
			pix[o+0] = r32
			pix[o+1] = g32
			pix[o+2] = b32
			pix[o+3] = 1.0
		}
	}

	return pix, width, height, nil
}

// skipHeaderLines consumes the "#?..." signature line and all following
// header lines up to (and including) the blank line that terminates them.
func skipHeaderLines(r *bufio.Reader) error {
	first, err := r.ReadString('\n')
	if err != nil {
		return fmt.Errorf("hdr: reading signature: %w", err)
	}
	if !strings.HasPrefix(first, "#?") {
		return fmt.Errorf("hdr: missing #? signature")
	}

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return fmt.Errorf("hdr: reading header: %w", err)
		}
		if strings.TrimRight(line, "\r\n") == "" {
			return nil
		}
	}
}

// readResolutionLine parses a line like "-Y 512 +X 1024".
func readResolutionLine(r *bufio.Reader) (width, height int, err error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return 0, 0, fmt.Errorf("hdr: reading resolution line: %w", err)
	}
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return 0, 0, fmt.Errorf("hdr: malformed resolution line %q", line)
	}

	// Only the common top-down, left-right orientation (-Y H +X W) is
	// supported; other orientations would require transposing/flipping,
	// which no pipeline stage downstream expects.
	if fields[0] != "-Y" || fields[2] != "+X" {
		return 0, 0, fmt.Errorf("hdr: unsupported orientation %q (only -Y +X supported)", line)
	}

	height, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("hdr: parsing height: %w", err)
	}
	width, err = strconv.Atoi(fields[3])
	if err != nil {
		return 0, 0, fmt.Errorf("hdr: parsing width: %w", err)
	}
	return width, height, nil
}

// readScanline reads one scanline of RGBE quads into dst (len == width*4),
// handling both the new-style RLE encoding and legacy flat scanlines.
// Old-style RLE runs (1,1,1,count repeat markers) are not expanded; they
// are read as ordinary flat pixels.
func readScanline(r *bufio.Reader, dst []byte, width int) error {
	if width < 8 || width > 0x7fff {
		return readFlatScanline(r, dst, width)
	}

	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return err
	}

	if head[0] != 2 || head[1] != 2 || (int(head[2])<<8|int(head[3])) != width {
		// Not new-style RLE: treat head as the first flat pixel and fall
		// back to reading the remainder flat.
		dst[0], dst[1], dst[2], dst[3] = head[0], head[1], head[2], head[3]
		return readFlatScanline(r, dst[4:], width-1)
	}

	for ch := 0; ch < 4; ch++ {
		x := 0
		for x < width {
			countByte, err := r.ReadByte()
			if err != nil {
				return err
			}
			if countByte > 128 {
				run := int(countByte) - 128
				v, err := r.ReadByte()
				if err != nil {
					return err
				}
				for i := 0; i < run; i++ {
					dst[(x+i)*4+ch] = v
				}
				x += run
			} else {
				run := int(countByte)
				for i := 0; i < run; i++ {
					v, err := r.ReadByte()
					if err != nil {
						return err
					}
					dst[(x+i)*4+ch] = v
				}
				x += run
			}
		}
	}
	return nil
}

func readFlatScanline(r *bufio.Reader, dst []byte, width int) error {
	for x := 0; x < width; x++ {
		var quad [4]byte
		if _, err := io.ReadFull(r, quad[:]); err != nil {
			return err
		}
		dst[x*4+0], dst[x*4+1], dst[x*4+2], dst[x*4+3] = quad[0], quad[1], quad[2], quad[3]
	}
	return nil
}

// rgbeToFloat converts a Radiance RGBE quad to linear float RGB.
func rgbeToFloat(r, g, b, e byte) (float32, float32, float32) {
	if e == 0 {
		return 0, 0, 0
	}
	f := math.Ldexp(1.0, int(e)-(128+8))
	return float32(float64(r) * f), float32(float64(g) * f), float32(float64(b) * f)
}
