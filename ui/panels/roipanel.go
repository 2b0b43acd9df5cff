// Package panels provides the side panels of the main window.
package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"vault-tracer/internal/app"
	"vault-tracer/internal/ratio"
	"vault-tracer/internal/roi"
)

// ROIPanel shows the numeric state of the selection, proportion
// suggestions for the framed bay, and the save controls.
type ROIPanel struct {
	state  *app.State
	widget fyne.CanvasObject

	centerLabel   *widget.Label
	sizeLabel     *widget.Label
	rotationLabel *widget.Label
	modeLabel     *widget.Label
	ratioLabel    *widget.Label
	resultLabel   *widget.Label

	saveButton  *widget.Button
	resetButton *widget.Button

	onSave  func()
	onReset func()
}

// NewROIPanel creates the selection panel.
func NewROIPanel(state *app.State) *ROIPanel {
	rp := &ROIPanel{
		state:         state,
		centerLabel:   widget.NewLabel("Center: (0.500, 0.500)"),
		sizeLabel:     widget.NewLabel("Size: 0.600 x 0.600"),
		rotationLabel: widget.NewLabel("Rotation: 0.0°"),
		modeLabel:     widget.NewLabel("Mode: idle"),
		ratioLabel:    widget.NewLabel("Proportions: -"),
		resultLabel:   widget.NewLabel(""),
	}

	rp.saveButton = widget.NewButton("Save ROI", func() {
		if rp.onSave != nil {
			rp.onSave()
		}
	})
	rp.resetButton = widget.NewButton("Reset", func() {
		if rp.onReset != nil {
			rp.onReset()
		}
	})

	rp.widget = container.NewVBox(
		widget.NewLabelWithStyle("Region of Interest", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		rp.centerLabel,
		rp.sizeLabel,
		rp.rotationLabel,
		rp.modeLabel,
		widget.NewSeparator(),
		rp.ratioLabel,
		widget.NewSeparator(),
		container.NewHBox(rp.saveButton, rp.resetButton),
		rp.resultLabel,
	)

	state.On(app.EventROIChanged, func(data interface{}) {
		if s, ok := data.(roi.State); ok {
			rp.UpdateROI(s)
		}
	})

	return rp
}

// Widget returns the panel's root object for embedding in layouts.
func (rp *ROIPanel) Widget() fyne.CanvasObject {
	return rp.widget
}

// OnSave sets the callback for the Save ROI button.
func (rp *ROIPanel) OnSave(fn func()) {
	rp.onSave = fn
}

// OnReset sets the callback for the Reset button.
func (rp *ROIPanel) OnReset(fn func()) {
	rp.onReset = fn
}

// UpdateROI refreshes the numeric readout and the proportion
// suggestions for the framed area.
func (rp *ROIPanel) UpdateROI(s roi.State) {
	rp.centerLabel.SetText(fmt.Sprintf("Center: (%.3f, %.3f)", s.X, s.Y))
	rp.sizeLabel.SetText(fmt.Sprintf("Size: %.3f x %.3f", s.Width, s.Height))
	rp.rotationLabel.SetText(fmt.Sprintf("Rotation: %.1f°", s.Rotation))
	rp.updateRatio(s)
}

// SetMode shows the active manipulation mode.
func (rp *ROIPanel) SetMode(mode roi.Mode) {
	rp.modeLabel.SetText("Mode: " + mode.String())
}

// ShowSaveResult reports the backend's classification counts.
func (rp *ROIPanel) ShowSaveResult(inside, outside int) {
	rp.resultLabel.SetText(fmt.Sprintf("Saved: %d inside, %d outside", inside, outside))
}

// ShowSaveError reports a failed save.
func (rp *ROIPanel) ShowSaveError(err error) {
	rp.resultLabel.SetText("Save failed: " + err.Error())
}

// updateRatio recomputes the bay proportion suggestions from the
// selection's framed area on the loaded projection.
func (rp *ROIPanel) updateRatio(s roi.State) {
	proj := rp.state.Projection
	if proj == nil || s.Height == 0 {
		rp.ratioLabel.SetText("Proportions: -")
		return
	}

	// Aspect of the framed region in world terms: the selection's
	// normalized aspect corrected by the projection's own ratio.
	vaultRatio, _ := proj.VaultRatio()
	target := (s.Width / s.Height) * vaultRatio

	suggestions := ratio.Suggest(target)
	if len(suggestions) == 0 {
		rp.ratioLabel.SetText("Proportions: -")
		return
	}

	best := suggestions[0]
	rp.ratioLabel.SetText(fmt.Sprintf("Proportions: %s (%.2f, err %.1f%%)",
		best.Label, target, best.ErrPercent))
}
