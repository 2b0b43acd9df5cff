// Package canvas provides the projection editing surface with the
// oriented selection overlay.
package canvas

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"vault-tracer/internal/roi"
)

var (
	outlineColor = color.RGBA{R: 0x00, G: 0xBC, B: 0xD4, A: 0xFF} // Cyan
	handleColor  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	rotateColor  = color.RGBA{R: 0xFF, G: 0xC1, B: 0x07, A: 0xFF} // Amber
)

// EditorSurface displays a projection image and lets the user move,
// resize, and rotate an oriented selection over it. The selection
// itself lives in a roi.Controller; the surface maps pointer events
// into normalized coordinates and redraws from the controller's state.
type EditorSurface struct {
	widget.BaseWidget

	projection image.Image
	controller *roi.Controller
	raster     *fynecanvas.Raster

	// Handle under the pointer while hovering, for cursor feedback.
	hover roi.Handle

	onROIChanged  func(roi.State)
	onModeChanged func(roi.Mode)
}

// NewEditorSurface creates a surface editing the default selection.
func NewEditorSurface() *EditorSurface {
	es := &EditorSurface{
		controller: roi.NewController(),
	}
	es.raster = fynecanvas.NewRaster(es.draw)
	es.raster.ScaleMode = fynecanvas.ImageScalePixels
	es.ExtendBaseWidget(es)
	return es
}

// SetProjection sets the image shown under the selection overlay.
func (es *EditorSurface) SetProjection(img image.Image) {
	es.projection = img
	es.Refresh()
}

// State returns the current selection.
func (es *EditorSurface) State() roi.State {
	return es.controller.State()
}

// SetState replaces the selection, e.g. after loading a project.
func (es *EditorSurface) SetState(s roi.State) {
	es.controller.SetState(s)
	es.Refresh()
}

// ResetSelection restores the default selection.
func (es *EditorSurface) ResetSelection() {
	es.controller.Reset()
	es.notifyChanged()
	es.Refresh()
}

// OnROIChanged sets a callback invoked whenever a gesture changes the
// selection.
func (es *EditorSurface) OnROIChanged(fn func(roi.State)) {
	es.onROIChanged = fn
}

// OnModeChanged sets a callback invoked when a gesture starts or ends.
func (es *EditorSurface) OnModeChanged(fn func(roi.Mode)) {
	es.onModeChanged = fn
}

func (es *EditorSurface) notifyMode(mode roi.Mode) {
	if es.onModeChanged != nil {
		es.onModeChanged(mode)
	}
}

// surfaceRect describes the widget's drawable area for the coordinate
// mapper. Event positions are widget-relative, so the origin is zero.
func (es *EditorSurface) surfaceRect() roi.SurfaceRect {
	size := es.Size()
	return roi.SurfaceRect{Width: float64(size.Width), Height: float64(size.Height)}
}

// MouseDown arms the gesture matching the pressed position.
func (es *EditorSurface) MouseDown(ev *desktop.MouseEvent) {
	pos, ok := roi.MapPointer(float64(ev.Position.X), float64(ev.Position.Y), es.surfaceRect())
	if !ok {
		return
	}
	es.notifyMode(es.controller.PointerDown(pos))
	es.Refresh()
}

// MouseUp ends the active gesture.
func (es *EditorSurface) MouseUp(ev *desktop.MouseEvent) {
	es.controller.PointerUp()
	es.notifyMode(roi.ModeIdle)
	es.Refresh()
}

// Dragged applies the active gesture at the new pointer position.
func (es *EditorSurface) Dragged(ev *fyne.DragEvent) {
	surface := es.surfaceRect()
	pos, ok := roi.MapPointer(float64(ev.Position.X), float64(ev.Position.Y), surface)
	if !ok {
		return
	}

	// Touch drivers deliver drags without a mouse press; arm the
	// gesture from where the drag started.
	if es.controller.Mode() == roi.ModeIdle {
		start, ok := roi.MapPointer(
			float64(ev.Position.X-ev.Dragged.DX),
			float64(ev.Position.Y-ev.Dragged.DY),
			surface,
		)
		if !ok {
			return
		}
		mode := es.controller.PointerDown(start)
		if mode == roi.ModeIdle {
			return
		}
		es.notifyMode(mode)
	}

	before := es.controller.State()
	es.controller.PointerMove(pos)
	if es.controller.State() != before {
		es.notifyChanged()
	}
	es.Refresh()
}

// DragEnd ends the active gesture.
func (es *EditorSurface) DragEnd() {
	es.controller.PointerUp()
	es.notifyMode(roi.ModeIdle)
	es.Refresh()
}

// MouseIn implements desktop.Hoverable.
func (es *EditorSurface) MouseIn(ev *desktop.MouseEvent) {
	es.MouseMoved(ev)
}

// MouseMoved tracks the handle under the pointer for cursor feedback.
func (es *EditorSurface) MouseMoved(ev *desktop.MouseEvent) {
	pos, ok := roi.MapPointer(float64(ev.Position.X), float64(ev.Position.Y), es.surfaceRect())
	if !ok {
		return
	}
	hover := roi.HitTest(pos, es.controller.State())
	if hover != es.hover {
		es.hover = hover
	}
}

// MouseOut implements desktop.Hoverable.
func (es *EditorSurface) MouseOut() {
	es.hover = roi.HandleNone
}

// Cursor implements desktop.Cursorable: crosshair over the handles,
// pointer over the body, default elsewhere.
func (es *EditorSurface) Cursor() desktop.Cursor {
	switch {
	case es.hover.IsCorner():
		return desktop.CrosshairCursor
	case es.hover == roi.HandleRotate:
		return desktop.CrosshairCursor
	case es.hover == roi.HandleInside:
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

func (es *EditorSurface) notifyChanged() {
	if es.onROIChanged != nil {
		es.onROIChanged(es.controller.State())
	}
}

// Refresh redraws the surface.
func (es *EditorSurface) Refresh() {
	es.raster.Refresh()
	es.BaseWidget.Refresh()
}

// MinSize keeps the surface usable even before a projection loads.
func (es *EditorSurface) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// CreateRenderer implements fyne.Widget.
func (es *EditorSurface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(es.raster)
}

// draw is the raster drawing function: the projection scaled to the
// surface, then the selection overlay on top.
func (es *EditorSurface) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(output.Pix); i += 4 {
		output.Pix[i] = 255
	}
	if w == 0 || h == 0 {
		return output
	}

	if es.projection != nil {
		drawScaled(output, es.projection, w, h)
	}
	es.drawSelection(output, w, h)
	return output
}

// drawScaled paints the projection stretched to the full surface using
// nearest-neighbour sampling; the drawable area and the image share an
// aspect only approximately, same as the normalized editing space.
func drawScaled(output *image.RGBA, src image.Image, w, h int) {
	bounds := src.Bounds()
	for y := 0; y < h; y++ {
		srcY := bounds.Min.Y + y*bounds.Dy()/h
		for x := 0; x < w; x++ {
			srcX := bounds.Min.X + x*bounds.Dx()/w
			output.Set(x, y, src.At(srcX, srcY))
		}
	}
}

// drawSelection draws the oriented rectangle, its corner handles, and
// the rotate handle.
func (es *EditorSurface) drawSelection(output *image.RGBA, w, h int) {
	s := es.controller.State()
	corners := roi.Corners(s)

	// Normalized to surface pixels.
	fw, fh := float64(w), float64(h)
	px := func(i int) (int, int) {
		return int(corners[i].X * fw), int(corners[i].Y * fh)
	}

	for i := 0; i < 4; i++ {
		x1, y1 := px(i)
		x2, y2 := px((i + 1) % 4)
		drawLine(output, x1, y1, x2, y2, outlineColor, 2)
	}

	// Corner handles sized to match the hit radius.
	handleR := int(roi.HandleRadius * fw)
	if handleR < 3 {
		handleR = 3
	}
	for i := 0; i < 4; i++ {
		x, y := px(i)
		drawSquare(output, x, y, handleR, handleColor, outlineColor)
	}

	// Rotate handle: stub line from the top edge, then a filled circle.
	grab := roi.RotateHandlePos(s)
	gx, gy := int(grab.X*fw), int(grab.Y*fh)
	midX := (corners[0].X + corners[1].X) / 2 * fw
	midY := (corners[0].Y + corners[1].Y) / 2 * fh
	drawLine(output, int(midX), int(midY), gx, gy, rotateColor, 1)
	drawCircle(output, gx, gy, handleR, rotateColor)
}
