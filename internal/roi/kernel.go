package roi

import (
	"math"

	"vault-tracer/pkg/geometry"
)

// Corners returns the four oriented corners of the selection in fixed
// NW, NE, SE, SW order. The corners are always derived from the current
// state; they are never stored, so they cannot drift out of sync with
// the center, extents, or rotation.
func Corners(s State) [4]geometry.Point2D {
	hw := s.Width / 2
	hh := s.Height / 2
	offsets := [4]geometry.Point2D{
		{X: -hw, Y: -hh}, // NW
		{X: hw, Y: -hh},  // NE
		{X: hw, Y: hh},   // SE
		{X: -hw, Y: hh},  // SW
	}

	theta := s.Rotation * math.Pi / 180
	center := s.Center()
	var corners [4]geometry.Point2D
	for i, off := range offsets {
		corners[i] = off.Rotate(theta).Add(center)
	}
	return corners
}

// ToLocal maps a normalized canvas point into the selection's own
// unrotated frame, with the origin at the selection center.
func ToLocal(p geometry.Point2D, s State) geometry.Point2D {
	theta := s.Rotation * math.Pi / 180
	return p.Sub(s.Center()).Rotate(-theta)
}

// FromLocal is the inverse of ToLocal: it maps a point in the
// selection's unrotated frame back to normalized canvas coordinates.
func FromLocal(p geometry.Point2D, s State) geometry.Point2D {
	theta := s.Rotation * math.Pi / 180
	return p.Rotate(theta).Add(s.Center())
}

// IsInside reports whether p falls strictly inside the oriented
// rectangle. Points exactly on the boundary count as outside.
func IsInside(p geometry.Point2D, s State) bool {
	local := ToLocal(p, s)
	return math.Abs(local.X) < s.Width/2 && math.Abs(local.Y) < s.Height/2
}

// RotateHandlePos returns the grab point for the rotate gesture: the
// midpoint of the NW-NE edge, pushed outward along the rotated "up"
// direction by RotateHandleOffset. It sits clear of the corner handles
// so the two gestures stay visually and functionally distinct.
func RotateHandlePos(s State) geometry.Point2D {
	corners := Corners(s)
	mid := corners[0].Add(corners[1]).Scale(0.5)

	theta := s.Rotation * math.Pi / 180
	up := geometry.Point2D{X: 0, Y: -1}.Rotate(theta)
	return mid.Add(up.Scale(RotateHandleOffset))
}
