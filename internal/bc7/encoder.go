package bc7

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/woozymasta/ktxbake/internal/texture"
)

// Encode compresses an already-quantized RGBA8 buffer (the caller,
// internal/encode, has already applied the sRGB/linear gamma policy for
// bc7/bc7_srgb) into a BC7 block stream. width and height need not be
// block-aligned; partial edge blocks are zero-padded by fetchBlock. The
// work queue is grounded on go-astc-encoder's EncodeRGBA8WithProfileAndQuality:
// an atomically-indexed block index consumed by a fixed pool of goroutines,
// joined with a WaitGroup before Encode returns.
func Encode(pix []byte, width, height int, opts Options) ([]byte, error) {
	if err := Validate(opts); err != nil {
		return nil, err
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: bc7: rgba buffer length %d does not match %dx%d", texture.ErrInvalidInput, len(pix), width, height)
	}

	blocksX := (width + BlockSize - 1) / BlockSize
	blocksY := (height + BlockSize - 1) / BlockSize
	total := blocksX * blocksY

	out := make([]byte, total*BlockBytes)

	procs := opts.MaxThreads
	if procs < 1 {
		procs = 1
	}
	if procs > total {
		procs = total
	}
	if total == 0 {
		return out, nil
	}

	encodeOne := func(idx int) {
		bx := idx % blocksX
		by := idx / blocksX
		block := fetchBlock(pix, bx*BlockSize, by*BlockSize, width, height)
		enc := EncodeBlockMode6(block, opts.Perceptual, opts.RDO)
		copy(out[idx*BlockBytes:(idx+1)*BlockBytes], enc[:])
	}

	if procs == 1 || total < 32 {
		for idx := 0; idx < total; idx++ {
			encodeOne(idx)
		}
		return out, nil
	}

	var next uint32
	var wg sync.WaitGroup
	wg.Add(procs)
	for w := 0; w < procs; w++ {
		go func() {
			defer wg.Done()
			for {
				idx := int(atomic.AddUint32(&next, 1) - 1)
				if idx >= total {
					return
				}
				encodeOne(idx)
			}
		}()
	}
	wg.Wait()
	return out, nil
}
