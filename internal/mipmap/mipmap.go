// Package mipmap implements the Mipmap Generator stage (spec §4.C) as a
// lazy, non-restartable sequence of progressively halved levels, per the
// design note in spec §9 ("the iterator owns the current level and the
// options; next consumes and produces"). The halving/iteration structure
// is grounded on the teacher's edds.generateMipmaps box-filter mip chain
// (internal/edds/edds.go), generalized here to call internal/resize's
// configurable filters and to stop at an encoder block size instead of 1x1.
package mipmap

import (
	"github.com/woozymasta/ktxbake/internal/resize"
	"github.com/woozymasta/ktxbake/internal/texture"
)

// Generator produces the mip chain below a source level, one call to Next
// at a time. Not safe for concurrent use; restart only by constructing a
// new Generator from the original source.
type Generator struct {
	cur       texture.Image
	blockSize uint32
	opts      resize.Options
	done      bool
}

// New creates a Generator starting just above source's first generated
// level (source itself is level 0 and is not re-emitted).
func New(source texture.Image, blockSize uint32, opts resize.Options) *Generator {
	return &Generator{cur: source, blockSize: blockSize, opts: opts}
}

// HasNext reports whether another level would be produced by Next, per the
// stopping rule in spec §4.C: stop once both sides are already <=
// blockSize.
func (g *Generator) HasNext() bool {
	if g.done {
		return false
	}
	return g.cur.Width > g.blockSize || g.cur.Height > g.blockSize
}

// Next produces the next mip level and advances the generator.
func (g *Generator) Next() (texture.Image, error) {
	if !g.HasNext() {
		g.done = true
		return texture.Image{}, errNoMoreLevels
	}

	nextW := halve(g.cur.Width)
	nextH := halve(g.cur.Height)

	level, err := resize.Resize(g.cur, nextW, nextH, g.opts)
	if err != nil {
		return texture.Image{}, err
	}

	g.cur = level
	return level, nil
}

func halve(v uint32) uint32 {
	if v/2 < 1 {
		return 1
	}
	return v / 2
}
