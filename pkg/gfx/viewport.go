package gfx

import (
	"math"

	"github.com/kjkrol/gokg/pkg/geom"
)

// Viewport tracks the logical surface size and the physical framebuffer
// size derived from it. Pointer coordinates share the physical pixel space.
type Viewport struct {
	logical geom.Vec[uint32]
	backing geom.Vec[uint32]
	ratio   float64
	version uint64
}

func newViewport(ratio float64) Viewport {
	return Viewport{ratio: normalizeRatio(ratio)}
}

// Logical returns the size in CSS/window points.
func (v Viewport) Logical() geom.Vec[uint32] {
	return v.logical
}

// Backing returns the framebuffer size in physical pixels.
func (v Viewport) Backing() geom.Vec[uint32] {
	return v.backing
}

func (v Viewport) PixelRatio() float64 {
	return v.ratio
}

// Version increments every time the backing size or ratio changes.
func (v Viewport) Version() uint64 {
	return v.version
}

// resize applies a new logical size and ratio and reports whether the
// backing size changed.
func (v *Viewport) resize(width, height int, ratio float64) bool {
	ratio = normalizeRatio(ratio)
	logical := geom.NewVec(clampDim(width), clampDim(height))
	backing := geom.NewVec(
		clampDim(int(float64(logical.X)*ratio)),
		clampDim(int(float64(logical.Y)*ratio)),
	)
	changed := backing != v.backing || ratio != v.ratio
	v.logical = logical
	v.backing = backing
	v.ratio = ratio
	if changed {
		v.version++
	}
	return changed
}

// normalizeRatio clamps the ratio to at least 1, the way browsers report
// devicePixelRatio on low density screens.
func normalizeRatio(ratio float64) float64 {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio < 1 {
		return 1
	}
	return ratio
}

func clampDim(v int) uint32 {
	if v < 0 {
		return 0
	}
	if uint64(v) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
