package roi

import (
	"math"
	"testing"

	"vault-tracer/pkg/geometry"
)

func TestControllerStartsIdleWithDefault(t *testing.T) {
	c := NewController()
	if c.Mode() != ModeIdle {
		t.Errorf("Mode = %s, want idle", c.Mode())
	}
	if c.State() != Default() {
		t.Errorf("State = %v, want default", c.State())
	}
}

func TestPointerDownOutsideStaysIdle(t *testing.T) {
	c := NewController()
	if mode := c.PointerDown(geometry.Point2D{X: 0.02, Y: 0.02}); mode != ModeIdle {
		t.Errorf("Mode = %s, want idle", mode)
	}

	// Moves without an armed gesture must not touch the selection.
	before := c.State()
	c.PointerMove(geometry.Point2D{X: 0.9, Y: 0.9})
	if c.State() != before {
		t.Errorf("State changed without a gesture: %v", c.State())
	}
}

func TestMoveGesture(t *testing.T) {
	c := NewController()
	c.PointerDown(geometry.Point2D{X: 0.5, Y: 0.5})
	if c.Mode() != ModeMoving {
		t.Fatalf("Mode = %s, want moving", c.Mode())
	}

	c.PointerMove(geometry.Point2D{X: 0.6, Y: 0.45})
	s := c.State()
	if !approxEqual(s.X, 0.6, epsilon) || !approxEqual(s.Y, 0.45, epsilon) {
		t.Errorf("center = (%f, %f), want (0.6, 0.45)", s.X, s.Y)
	}
	if s.Width != 0.6 || s.Height != 0.6 || s.Rotation != 0 {
		t.Errorf("move changed extents or rotation: %v", s)
	}
}

func TestMoveClampsCenter(t *testing.T) {
	c := NewController()
	c.PointerDown(geometry.Point2D{X: 0.5, Y: 0.5})

	// A delta far larger than the canvas clamps to 0.9 exactly.
	c.PointerMove(geometry.Point2D{X: 10.5, Y: 0.5})
	if s := c.State(); s.X != 0.9 || s.Y != 0.5 {
		t.Errorf("center = (%f, %f), want (0.9, 0.5)", s.X, s.Y)
	}

	c.PointerMove(geometry.Point2D{X: -10, Y: -10})
	if s := c.State(); s.X != 0.1 || s.Y != 0.1 {
		t.Errorf("center = (%f, %f), want (0.1, 0.1)", s.X, s.Y)
	}
}

func TestMoveDeltasComeFromSnapshot(t *testing.T) {
	c := NewController()
	c.PointerDown(geometry.Point2D{X: 0.5, Y: 0.5})

	// Many intermediate moves then back to a small offset: the result
	// must depend only on the final pointer position, not the path.
	for i := 0; i < 100; i++ {
		c.PointerMove(geometry.Point2D{X: 0.5 + float64(i)*0.001, Y: 0.5})
	}
	c.PointerMove(geometry.Point2D{X: 0.55, Y: 0.5})
	if s := c.State(); !approxEqual(s.X, 0.55, epsilon) {
		t.Errorf("X = %f, want 0.55", s.X)
	}
}

func TestResizeSymmetricAroundCenter(t *testing.T) {
	c := NewController()
	c.SetState(State{X: 0.5, Y: 0.5, Width: 0.4, Height: 0.4})

	// SE corner sits at (0.7, 0.7).
	if mode := c.PointerDown(geometry.Point2D{X: 0.7, Y: 0.7}); mode != ModeResizing {
		t.Fatalf("Mode = %s, want resizing", mode)
	}
	if c.ActiveHandle() != HandleSE {
		t.Fatalf("ActiveHandle = %s, want se", c.ActiveHandle())
	}

	c.PointerMove(geometry.Point2D{X: 0.8, Y: 0.8})
	s := c.State()
	if !approxEqual(s.Width, 0.6, epsilon) || !approxEqual(s.Height, 0.6, epsilon) {
		t.Errorf("extents = (%f, %f), want (0.6, 0.6)", s.Width, s.Height)
	}
	if s.X != 0.5 || s.Y != 0.5 {
		t.Errorf("center moved during resize: (%f, %f)", s.X, s.Y)
	}
}

func TestResizeClampsToMinimum(t *testing.T) {
	c := NewController()
	c.SetState(State{X: 0.5, Y: 0.5, Width: 0.2, Height: 0.6})

	// NW corner at (0.4, 0.2); dragging east by a full canvas width
	// drives the width negative, which clamps to the minimum exactly.
	c.PointerDown(geometry.Point2D{X: 0.4, Y: 0.2})
	c.PointerMove(geometry.Point2D{X: 1.4, Y: 0.2})
	if s := c.State(); s.Width != MinExtent {
		t.Errorf("Width = %f, want %f", s.Width, MinExtent)
	}
	if s := c.State(); !approxEqual(s.Height, 0.6, epsilon) {
		t.Errorf("Height = %f, want 0.6", s.Height)
	}
}

func TestResizeRespectsRotation(t *testing.T) {
	c := NewController()
	c.SetState(State{X: 0.5, Y: 0.5, Width: 0.4, Height: 0.4, Rotation: 90})

	// At 90 degrees the SE corner lands at (0.3, 0.7); a screen-space
	// drag of (-0.1, +0.1) is (+0.1, +0.1) in the local frame.
	c.PointerDown(geometry.Point2D{X: 0.3, Y: 0.7})
	if c.ActiveHandle() != HandleSE {
		t.Fatalf("ActiveHandle = %s, want se", c.ActiveHandle())
	}
	c.PointerMove(geometry.Point2D{X: 0.2, Y: 0.8})

	s := c.State()
	if !approxEqual(s.Width, 0.6, 1e-9) || !approxEqual(s.Height, 0.6, 1e-9) {
		t.Errorf("extents = (%f, %f), want (0.6, 0.6)", s.Width, s.Height)
	}
}

func TestRotateAccumulates(t *testing.T) {
	c := NewController()
	c.SetState(State{X: 0.5, Y: 0.5, Width: 0.6, Height: 0.6, Rotation: 10})

	grab := RotateHandlePos(c.State())
	if mode := c.PointerDown(grab); mode != ModeRotating {
		t.Fatalf("Mode = %s, want rotating", mode)
	}

	// Move the pointer to a position exactly 20 degrees further around
	// the center, keeping the same distance.
	center := c.State().Center()
	radius := grab.Distance(center)
	angle := math.Atan2(grab.Y-center.Y, grab.X-center.X) + 20*math.Pi/180
	c.PointerMove(geometry.Point2D{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	})

	s := c.State()
	if !approxEqual(s.Rotation, 30, 1e-9) {
		t.Errorf("Rotation = %f, want 30", s.Rotation)
	}
	if s.X != 0.5 || s.Y != 0.5 || s.Width != 0.6 || s.Height != 0.6 {
		t.Errorf("rotation changed center or extents: %v", s)
	}
}

func TestRotateIndependentOfRadius(t *testing.T) {
	c := NewController()
	c.SetState(State{X: 0.5, Y: 0.5, Width: 0.6, Height: 0.6, Rotation: 45})

	grab := RotateHandlePos(c.State())
	c.PointerDown(grab)

	// Same angular delta at a different radius gives the same rotation.
	center := c.State().Center()
	angle := math.Atan2(grab.Y-center.Y, grab.X-center.X) - 30*math.Pi/180
	c.PointerMove(geometry.Point2D{
		X: center.X + 2.5*math.Cos(angle),
		Y: center.Y + 2.5*math.Sin(angle),
	})

	if s := c.State(); !approxEqual(s.Rotation, 15, 1e-9) {
		t.Errorf("Rotation = %f, want 15", s.Rotation)
	}
}

func TestPointerUpReturnsToIdle(t *testing.T) {
	c := NewController()
	c.PointerDown(geometry.Point2D{X: 0.5, Y: 0.5})
	c.PointerMove(geometry.Point2D{X: 0.6, Y: 0.6})
	c.PointerUp()

	if c.Mode() != ModeIdle {
		t.Errorf("Mode = %s, want idle", c.Mode())
	}
	if c.ActiveHandle() != HandleNone {
		t.Errorf("ActiveHandle = %s, want none", c.ActiveHandle())
	}

	// The finished gesture keeps its result; a stray move changes nothing.
	after := c.State()
	c.PointerMove(geometry.Point2D{X: 0.9, Y: 0.9})
	if c.State() != after {
		t.Errorf("State changed after pointer up: %v", c.State())
	}
}

func TestGestureSequenceCycles(t *testing.T) {
	c := NewController()

	// Move, release, then resize: the second gesture starts from the
	// result of the first.
	c.PointerDown(geometry.Point2D{X: 0.5, Y: 0.5})
	c.PointerMove(geometry.Point2D{X: 0.55, Y: 0.5})
	c.PointerUp()

	s := c.State()
	corners := Corners(s)
	c.PointerDown(corners[2]) // SE
	c.PointerMove(corners[2].Add(geometry.Point2D{X: 0.05, Y: 0.05}))
	c.PointerUp()

	got := c.State()
	if !approxEqual(got.X, 0.55, epsilon) {
		t.Errorf("X = %f, want 0.55", got.X)
	}
	if !approxEqual(got.Width, s.Width+0.1, epsilon) {
		t.Errorf("Width = %f, want %f", got.Width, s.Width+0.1)
	}
}
