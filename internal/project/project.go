// Package project provides project file handling and persistence.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vault-tracer/internal/roi"
)

// File represents a vault tracer project file (.vaultproj).
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// Backend linkage
	BackendURL   string `json:"backend_url,omitempty"`
	ProjectID    string `json:"project_id,omitempty"`
	ProjectionID string `json:"projection_id,omitempty"`

	// Local projection image path (relative to project file), used when
	// working offline from a previously fetched image.
	ProjectionImagePath string `json:"projection_image,omitempty"`

	// Saved selection in normalized coordinates.
	ROI *roi.State `json:"roi,omitempty"`

	// Pixel-space snapshot of the selection as last submitted, corners
	// included. Kept so the backend payload can be reconstructed even
	// if the projection resolution changes.
	PixelROI *roi.PixelROI `json:"pixel_roi,omitempty"`

	Settings Settings `json:"settings,omitempty"`
}

// Settings holds user preferences for the project.
type Settings struct {
	PreviewMaxDim  int  `json:"preview_max_dim,omitempty"`
	AutoFetchImage bool `json:"auto_fetch_image"`
}

// New creates a new project file with default settings.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		Settings: Settings{
			PreviewMaxDim:  1600,
			AutoFetchImage: true,
		},
	}
}

// Load reads a project file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid project file %s: %w", path, err)
	}
	if file.Version == 0 {
		return nil, fmt.Errorf("project file %s has no version", path)
	}
	return &file, nil
}

// Save writes the project file to disk, updating the modified time.
func (f *File) Save(path string) error {
	f.Modified = time.Now()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
