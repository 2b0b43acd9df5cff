package roi

import (
	"vault-tracer/pkg/geometry"
)

// SurfaceRect is the editing surface's bounding rectangle in client
// coordinates, as reported by the windowing layer at event time.
type SurfaceRect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// MapPointer converts a client-space pointer position into coordinates
// normalized to the editing surface. When the surface rectangle is
// missing or degenerate there is no meaningful position; ok is false
// and callers must drop the event rather than treat it as an error.
func MapPointer(clientX, clientY float64, surface SurfaceRect) (geometry.Point2D, bool) {
	if surface.Width <= 0 || surface.Height <= 0 {
		return geometry.Point2D{}, false
	}
	return geometry.Point2D{
		X: (clientX - surface.Left) / surface.Width,
		Y: (clientY - surface.Top) / surface.Height,
	}, true
}
