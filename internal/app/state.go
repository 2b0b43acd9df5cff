// Package app provides application lifecycle management, state, and events.
package app

import (
	"fmt"
	"sync"

	"vault-tracer/internal/backend"
	"vault-tracer/internal/project"
	"vault-tracer/internal/projection"
	"vault-tracer/internal/roi"
)

// State holds the application state: the open project, the loaded
// projection, and the selection being edited.
type State struct {
	mu sync.RWMutex

	// Project
	ProjectPath string
	Modified    bool

	// Backend
	BackendURL   string
	ProjectID    string
	ProjectionID string

	// Loaded projection image
	Projection *projection.Projection

	// Current selection. Replaced wholesale on every change; never
	// mutated field by field.
	ROI roi.State

	// Pixel-space selection loaded from a project that stored no
	// normalized form. It cannot be normalized until a projection
	// supplies the image resolution.
	pendingPixelROI *roi.PixelROI

	// Result of the most recent save, if any.
	LastSave *backend.SaveROIResult

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventProjectionLoaded
	EventROIChanged
	EventROISaved
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with the default selection.
func NewState() *State {
	return &State{
		ROI:       roi.Default(),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetROI replaces the selection and notifies listeners.
func (s *State) SetROI(r roi.State) {
	s.mu.Lock()
	s.ROI = r
	s.Modified = true
	s.mu.Unlock()

	s.Emit(EventROIChanged, r)
	s.Emit(EventModified, nil)
}

// GetROI returns the current selection.
func (s *State) GetROI() roi.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ROI
}

// SetProjection installs a loaded projection and notifies listeners.
// A pixel-space selection waiting on the image resolution is normalized
// against the new projection.
func (s *State) SetProjection(p *projection.Projection) {
	s.mu.Lock()
	s.Projection = p
	pending := s.pendingPixelROI
	s.pendingPixelROI = nil
	s.mu.Unlock()

	s.Emit(EventProjectionLoaded, p)

	if pending != nil && p != nil {
		if restored, err := restoreSelection(*pending, p); err == nil {
			s.SetROI(restored)
		}
	}
}

// restoreSelection normalizes a stored pixel-space selection against
// the projection resolution. Stored corners are authoritative over the
// stored center and extents.
func restoreSelection(px roi.PixelROI, p *projection.Projection) (roi.State, error) {
	if len(px.Corners) == 4 {
		fitted, err := roi.FromPixelCorners(px.CornerPoints())
		if err != nil {
			return roi.State{}, err
		}
		px = fitted
	}
	return roi.FromPixels(px, float64(p.Width()), float64(p.Height()))
}

// RecordSave stores the counts reported by the backend for the last
// submitted selection.
func (s *State) RecordSave(result backend.SaveROIResult) {
	s.mu.Lock()
	s.LastSave = &result
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventROISaved, result)
}

// LoadProject reads a project file, restores the saved selection, and
// notifies listeners.
func (s *State) LoadProject(path string) error {
	file, err := project.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.BackendURL = file.BackendURL
	s.ProjectID = file.ProjectID
	s.ProjectionID = file.ProjectionID
	s.pendingPixelROI = nil
	if file.ROI != nil {
		s.ROI = *file.ROI
	} else {
		s.ROI = roi.Default()
		s.pendingPixelROI = file.PixelROI
	}
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectLoaded, file)
	s.Emit(EventROIChanged, s.GetROI())
	return nil
}

// SaveProject writes the current state to the project file at path.
func (s *State) SaveProject(path string) error {
	s.mu.RLock()
	file := project.New(s.ProjectID)
	file.BackendURL = s.BackendURL
	file.ProjectID = s.ProjectID
	file.ProjectionID = s.ProjectionID
	current := s.ROI
	file.ROI = &current
	if s.Projection != nil {
		px := current.ToPixels(float64(s.Projection.Width()), float64(s.Projection.Height()))
		file.PixelROI = &px
	}
	s.mu.RUnlock()

	if err := file.Save(path); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	return nil
}
