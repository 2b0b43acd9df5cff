package roi

import (
	"math"

	"vault-tracer/pkg/geometry"
)

// Mode is the controller's active manipulation.
type Mode int

const (
	ModeIdle Mode = iota
	ModeMoving
	ModeResizing
	ModeRotating
)

// String returns the mode name for logs and status display.
func (m Mode) String() string {
	switch m {
	case ModeMoving:
		return "moving"
	case ModeResizing:
		return "resizing"
	case ModeRotating:
		return "rotating"
	}
	return "idle"
}

// dragStart captures the pointer position and the selection as they were
// at press time. All delta math during a gesture works from this
// snapshot rather than the live selection, so a long continuous drag
// cannot compound rounding error.
type dragStart struct {
	pos geometry.Point2D
	roi State
}

// Controller owns the interaction mode for one editing surface and
// mutates the selection in response to a pointer down/move/up sequence.
// Every mutation replaces the State wholesale, so observers can detect
// changes by value comparison. The controller is not safe for
// concurrent use and assumes pointer events for a gesture arrive in
// down, move, up order.
type Controller struct {
	state  State
	mode   Mode
	handle Handle
	start  dragStart
}

// NewController creates a controller holding the default selection.
func NewController() *Controller {
	return &Controller{state: Default()}
}

// State returns the current selection.
func (c *Controller) State() State {
	return c.state
}

// Mode returns the active manipulation mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// ActiveHandle returns the corner being dragged during a resize, or
// HandleNone outside a resize gesture.
func (c *Controller) ActiveHandle() Handle {
	if c.mode != ModeResizing {
		return HandleNone
	}
	return c.handle
}

// SetState replaces the selection, e.g. after loading a saved project.
// Any gesture in progress is abandoned.
func (c *Controller) SetState(s State) {
	c.state = s
	c.clearGesture()
}

// Reset restores the default selection and returns to idle.
func (c *Controller) Reset() {
	c.SetState(Default())
}

// PointerDown classifies the press position and arms the matching
// gesture. A press that hits nothing leaves the controller idle and
// the event unconsumed. Returns the resulting mode.
func (c *Controller) PointerDown(p geometry.Point2D) Mode {
	switch h := HitTest(p, c.state); {
	case h == HandleInside:
		c.mode = ModeMoving
	case h == HandleRotate:
		c.mode = ModeRotating
	case h.IsCorner():
		c.mode = ModeResizing
		c.handle = h
	default:
		c.clearGesture()
		return c.mode
	}

	c.start = dragStart{pos: p, roi: c.state}
	return c.mode
}

// PointerMove applies the active gesture at the new pointer position.
// Outside a gesture this is a no-op.
func (c *Controller) PointerMove(p geometry.Point2D) {
	switch c.mode {
	case ModeMoving:
		c.state = c.moved(p)
	case ModeResizing:
		c.state = c.resized(p)
	case ModeRotating:
		c.state = c.rotated(p)
	}
}

// PointerUp ends the gesture, releasing the pressed handle and the
// snapshot. Releasing the pointer is indistinguishable from finishing
// the gesture normally.
func (c *Controller) PointerUp() {
	c.clearGesture()
}

func (c *Controller) clearGesture() {
	c.mode = ModeIdle
	c.handle = HandleNone
	c.start = dragStart{}
}

func (c *Controller) moved(p geometry.Point2D) State {
	delta := p.Sub(c.start.pos)
	next := c.start.roi
	next.X = clamp(c.start.roi.X+delta.X, moveMin, moveMax)
	next.Y = clamp(c.start.roi.Y+delta.Y, moveMin, moveMax)
	return next
}

func (c *Controller) resized(p geometry.Point2D) State {
	// Rotate the raw pointer delta into the selection's local frame at
	// press time, then grow or shrink each axis depending on which
	// edges the pressed corner touches. The center stays put: the box
	// resizes symmetrically around it, not from the dragged corner.
	delta := p.Sub(c.start.pos)
	theta := c.start.roi.Rotation * math.Pi / 180
	local := delta.Rotate(-theta)

	next := c.start.roi
	if c.handle.touchesEast() {
		next.Width = math.Max(MinExtent, c.start.roi.Width+local.X*2)
	}
	if c.handle.touchesWest() {
		next.Width = math.Max(MinExtent, c.start.roi.Width-local.X*2)
	}
	if c.handle.touchesSouth() {
		next.Height = math.Max(MinExtent, c.start.roi.Height+local.Y*2)
	}
	if c.handle.touchesNorth() {
		next.Height = math.Max(MinExtent, c.start.roi.Height-local.Y*2)
	}
	return next
}

func (c *Controller) rotated(p geometry.Point2D) State {
	// The press angle is measured against the snapshot center and the
	// current angle against the live center. The two centers are the
	// same here because rotation never moves the center; if combined
	// move+rotate is ever allowed, both angles must switch to the live
	// center or the rotation will drift.
	pressAngle := angleAbout(c.start.roi.Center(), c.start.pos)
	liveAngle := angleAbout(c.state.Center(), p)

	next := c.start.roi
	next.Rotation = c.start.roi.Rotation + (liveAngle-pressAngle)*180/math.Pi
	return next
}

// angleAbout returns the angle of p as seen from center, in radians.
func angleAbout(center, p geometry.Point2D) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X)
}
