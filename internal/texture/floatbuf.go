package texture

import (
	"math"
	"unsafe"
)

// FloatsToBytes reinterprets a []float32 as its little-endian byte
// representation without copying. KTX2 and every intermediate stage store
// rgba_f32 levels as packed interleaved float32 (spec §3), so the pipeline
// moves between []float32 (for math) and []byte (for storage/IO) constantly.
func FloatsToBytes(f []float32) []byte {
	if len(f) == 0 {
		return nil
	}
	if !isLittleEndian {
		return floatsToBytesBE(f)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&f[0])), len(f)*4)
}

// BytesToFloats reinterprets a little-endian []byte as []float32 without
// copying. Panics if len(b) is not a multiple of 4 — callers only ever pass
// buffers produced by FloatsToBytes or the loader/resize/mipmap stages.
func BytesToFloats(b []byte) []float32 {
	if len(b) == 0 {
		return nil
	}
	if len(b)%4 != 0 {
		panic("texture: byte buffer length not a multiple of 4")
	}
	if !isLittleEndian {
		return bytesToFloatsBE(b)
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), len(b)/4)
}

var isLittleEndian = func() bool {
	var x uint16 = 1
	return (*[2]byte)(unsafe.Pointer(&x))[0] == 1
}()

func floatsToBytesBE(f []float32) []byte {
	out := make([]byte, len(f)*4)
	for i, v := range f {
		bits := math.Float32bits(v)
		out[i*4+0] = byte(bits)
		out[i*4+1] = byte(bits >> 8)
		out[i*4+2] = byte(bits >> 16)
		out[i*4+3] = byte(bits >> 24)
	}
	return out
}

func bytesToFloatsBE(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		bits := uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24
		out[i] = math.Float32frombits(bits)
	}
	return out
}
