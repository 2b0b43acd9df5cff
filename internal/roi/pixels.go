package roi

import (
	"fmt"
	"math"

	"vault-tracer/pkg/geometry"
)

// PixelROI is the selection expressed in the pixel space of the source
// projection image, as submitted to the analysis backend. X, Y is the
// center; Corners holds the four oriented corners in NW, NE, SE, SW
// order as [x, y] pairs. Rotation stays in degrees and is resolution
// independent.
type PixelROI struct {
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	Rotation float64      `json:"rotation"`
	Corners  [][2]float64 `json:"corners"`
}

// ToPixels scales the normalized selection by the image resolution.
// The conversion is a plain multiply per field so it stays exactly
// reversible via FromPixels; rotation is carried through unchanged.
func (s State) ToPixels(imageWidth, imageHeight float64) PixelROI {
	corners := Corners(s)
	px := PixelROI{
		X:        s.X * imageWidth,
		Y:        s.Y * imageHeight,
		Width:    s.Width * imageWidth,
		Height:   s.Height * imageHeight,
		Rotation: s.Rotation,
		Corners:  make([][2]float64, 4),
	}
	for i, c := range corners {
		px.Corners[i] = [2]float64{c.X * imageWidth, c.Y * imageHeight}
	}
	return px
}

// FromPixels maps a pixel-space selection back into normalized
// coordinates for the given image resolution.
func FromPixels(px PixelROI, imageWidth, imageHeight float64) (State, error) {
	if imageWidth <= 0 || imageHeight <= 0 {
		return State{}, fmt.Errorf("invalid image resolution %gx%g", imageWidth, imageHeight)
	}
	return State{
		X:        px.X / imageWidth,
		Y:        px.Y / imageHeight,
		Width:    px.Width / imageWidth,
		Height:   px.Height / imageHeight,
		Rotation: px.Rotation,
	}, nil
}

// CornerPoints returns the stored corners as points, or derives them
// from the center, extents, and rotation when none were stored.
func (r PixelROI) CornerPoints() [4]geometry.Point2D {
	if len(r.Corners) == 4 {
		var pts [4]geometry.Point2D
		for i, c := range r.Corners {
			pts[i] = geometry.Point2D{X: c[0], Y: c[1]}
		}
		return pts
	}

	s := State{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height, Rotation: r.Rotation}
	return Corners(s)
}

// ImageToUnit maps image pixel coordinates into the selection's unit
// square: (0,0) at the NW corner, (1,1) at SE, independent of rotation.
// Fails when the selection has zero extent.
func (r PixelROI) ImageToUnit(p geometry.Point2D) (geometry.Point2D, error) {
	if r.Width == 0 || r.Height == 0 {
		return geometry.Point2D{}, fmt.Errorf("selection width/height cannot be zero when converting coordinates")
	}

	theta := r.Rotation * math.Pi / 180
	local := p.Sub(geometry.Point2D{X: r.X, Y: r.Y}).Rotate(-theta)
	return geometry.Point2D{
		X: local.X/r.Width + 0.5,
		Y: local.Y/r.Height + 0.5,
	}, nil
}

// UnitToImage maps unit-square coordinates back into image pixels.
func (r PixelROI) UnitToImage(p geometry.Point2D) geometry.Point2D {
	theta := r.Rotation * math.Pi / 180
	local := geometry.Point2D{
		X: (p.X - 0.5) * r.Width,
		Y: (p.Y - 0.5) * r.Height,
	}
	return local.Rotate(theta).Add(geometry.Point2D{X: r.X, Y: r.Y})
}
