package roi

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"vault-tracer/pkg/geometry"
)

// FromPixelCorners recovers center, extents, and rotation from a
// four-corner pixel quad in NW, NE, SE, SW order. Saved selections may
// carry corners whose stored parameters have gone stale; when that
// happens the corners are authoritative. The quad is fitted with an
// affine least-squares solve against the unit corner offsets, which
// absorbs small scan noise in the corner positions.
func FromPixelCorners(corners [4]geometry.Point2D) (PixelROI, error) {
	// Unit offsets matching the NW, NE, SE, SW corner order.
	unit := [4]geometry.Point2D{
		{X: -0.5, Y: -0.5},
		{X: 0.5, Y: -0.5},
		{X: 0.5, Y: 0.5},
		{X: -0.5, Y: 0.5},
	}

	// Solve [u v 1] * [a b tx; c d ty]^T = [x y] for the 6 affine
	// parameters, 8 equations for 4 corner pairs.
	A := mat.NewDense(8, 6, nil)
	b := mat.NewVecDense(8, nil)
	for i := 0; i < 4; i++ {
		u, v := unit[i].X, unit[i].Y
		A.Set(i*2, 0, u)
		A.Set(i*2, 1, v)
		A.Set(i*2, 2, 1)
		A.Set(i*2+1, 3, u)
		A.Set(i*2+1, 4, v)
		A.Set(i*2+1, 5, 1)
		b.SetVec(i*2, corners[i].X)
		b.SetVec(i*2+1, corners[i].Y)
	}

	var qr mat.QR
	qr.Factorize(A)
	var params mat.VecDense
	if err := qr.SolveVecTo(&params, false, b); err != nil {
		return PixelROI{}, fmt.Errorf("failed to fit corner quad: %w", err)
	}

	// For a rotated rectangle the affine columns are the scaled axis
	// directions: (a,c) = width * (cos, sin), (b,d) = height * (-sin, cos).
	a, bb, tx := params.AtVec(0), params.AtVec(1), params.AtVec(2)
	c, d, ty := params.AtVec(3), params.AtVec(4), params.AtVec(5)

	width := math.Hypot(a, c)
	height := math.Hypot(bb, d)
	if width < 1e-9 || height < 1e-9 {
		return PixelROI{}, fmt.Errorf("degenerate corner quad: area %.3g", geometry.PolygonArea(corners[:]))
	}

	px := PixelROI{
		X:        tx,
		Y:        ty,
		Width:    width,
		Height:   height,
		Rotation: math.Atan2(c, a) * 180 / math.Pi,
		Corners:  make([][2]float64, 4),
	}
	for i, p := range corners {
		px.Corners[i] = [2]float64{p.X, p.Y}
	}
	return px, nil
}
