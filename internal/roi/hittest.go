package roi

import (
	"vault-tracer/pkg/geometry"
)

// Handle identifies the hot zone under the pointer at press time.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleNE
	HandleSE
	HandleSW
	HandleRotate
	HandleInside
)

// String returns the handle name as used in saved payloads and logs.
func (h Handle) String() string {
	switch h {
	case HandleNW:
		return "nw"
	case HandleNE:
		return "ne"
	case HandleSE:
		return "se"
	case HandleSW:
		return "sw"
	case HandleRotate:
		return "rotate"
	case HandleInside:
		return "inside"
	}
	return "none"
}

// IsCorner reports whether the handle is one of the four resize corners.
func (h Handle) IsCorner() bool {
	return h == HandleNW || h == HandleNE || h == HandleSE || h == HandleSW
}

func (h Handle) touchesEast() bool  { return h == HandleNE || h == HandleSE }
func (h Handle) touchesWest() bool  { return h == HandleNW || h == HandleSW }
func (h Handle) touchesSouth() bool { return h == HandleSE || h == HandleSW }
func (h Handle) touchesNorth() bool { return h == HandleNW || h == HandleNE }

// cornerHandles matches the NW, NE, SE, SW ordering of Corners.
var cornerHandles = [4]Handle{HandleNW, HandleNE, HandleSE, HandleSW}

// HitTest classifies a normalized pointer position against the current
// selection. Corner handles are checked first, then the rotate handle,
// then body containment, so a hot zone overlapping a corner never gets
// mis-classified as a move. Positions matching nothing return
// HandleNone; the event is not consumed.
func HitTest(p geometry.Point2D, s State) Handle {
	corners := Corners(s)
	for i, c := range corners {
		if p.Distance(c) < HandleRadius {
			return cornerHandles[i]
		}
	}

	if p.Distance(RotateHandlePos(s)) < HandleRadius {
		return HandleRotate
	}

	if IsInside(p, s) {
		return HandleInside
	}
	return HandleNone
}
