// Package roi implements the oriented region-of-interest editor used on
// projection images: the selection model, its derived geometry, hit
// testing, and the pointer-driven interaction controller.
package roi

import (
	"vault-tracer/pkg/geometry"
)

const (
	// MinExtent is the smallest normalized width or height the selection
	// may reach while resizing.
	MinExtent = 0.1

	// HandleRadius is the normalized hit radius around the corner and
	// rotate handles.
	HandleRadius = 0.03

	// RotateHandleOffset is the normalized distance between the top edge
	// and the rotate grab point.
	RotateHandleOffset = 0.05

	// moveMin and moveMax bound the center while the selection is being
	// dragged, so it can never leave the editable canvas entirely.
	moveMin = 0.1
	moveMax = 0.9
)

// State describes the current selection in coordinates normalized to the
// drawable area. X, Y is the center and Width, Height are the full
// extents, all in [0,1]. Rotation is in degrees and accumulates across
// gestures without wrap-around.
type State struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
}

// Default returns the initial selection: centered, covering 60% of the
// drawable area, unrotated.
func Default() State {
	return State{X: 0.5, Y: 0.5, Width: 0.6, Height: 0.6}
}

// Center returns the selection center as a point.
func (s State) Center() geometry.Point2D {
	return geometry.Point2D{X: s.X, Y: s.Y}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
