// Package projection handles projection images of scanned vaults and
// their metadata sidecars.
package projection

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// Projection is a 2D projection of a vault scan: the colour image plus
// the world extents recorded when the point cloud was flattened.
type Projection struct {
	ID    string
	Image image.Image

	// World extents in scan units. Zero when no metadata was found.
	WorldWidth  float64
	WorldHeight float64
}

// metadata mirrors the sidecar written next to each projection image.
type metadata struct {
	RangeVals []float64 `json:"range_vals"`
	Bounds    *struct {
		MinX float64 `json:"min_x"`
		MaxX float64 `json:"max_x"`
		MinY float64 `json:"min_y"`
		MaxY float64 `json:"max_y"`
	} `json:"bounds"`
}

// New wraps an already-decoded image, e.g. one fetched from the
// backend, as a projection without metadata.
func New(id string, img image.Image) *Projection {
	return &Projection{ID: id, Image: img}
}

// Load reads a projection image from disk, together with its
// "<prefix>_metadata.json" sidecar when present. A missing sidecar is
// not an error; the projection simply carries no world extents.
func Load(path string) (*Projection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open projection image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode projection image %s: %w", path, err)
	}

	p := &Projection{
		ID:    projectionPrefix(path),
		Image: img,
	}

	metaPath := filepath.Join(filepath.Dir(path), p.ID+"_metadata.json")
	if data, err := os.ReadFile(metaPath); err == nil {
		var meta metadata
		if err := json.Unmarshal(data, &meta); err == nil {
			p.WorldWidth, p.WorldHeight = worldExtents(meta)
		}
	}
	return p, nil
}

// projectionPrefix strips the image-type suffix so "bay3_colour.png"
// and "bay3_metadata.json" share the prefix "bay3".
func projectionPrefix(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.TrimSuffix(name, "_colour")
}

func worldExtents(meta metadata) (w, h float64) {
	if len(meta.RangeVals) >= 2 && meta.RangeVals[0] > 0 && meta.RangeVals[1] > 0 {
		return meta.RangeVals[0], meta.RangeVals[1]
	}
	if meta.Bounds != nil {
		w = meta.Bounds.MaxX - meta.Bounds.MinX
		h = meta.Bounds.MaxY - meta.Bounds.MinY
		if w > 0 && h > 0 {
			return w, h
		}
	}
	return 0, 0
}

// Width returns the image width in pixels.
func (p *Projection) Width() int {
	return p.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (p *Projection) Height() int {
	return p.Image.Bounds().Dy()
}

// Aspect returns the pixel aspect ratio (width over height).
func (p *Projection) Aspect() float64 {
	if p.Height() == 0 {
		return 0
	}
	return float64(p.Width()) / float64(p.Height())
}

// VaultRatio returns the best estimate of the real-world aspect ratio
// of the projected bay. Projections are stretched to fill the image, so
// pixel aspect alone is misleading; when world extents are available
// the pixel aspect is corrected by the anisotropy factor between the
// two spaces.
func (p *Projection) VaultRatio() (value float64, fromWorld bool) {
	aspect := p.Aspect()
	if aspect == 0 {
		return 0, false
	}
	if p.WorldWidth <= 0 || p.WorldHeight <= 0 {
		return aspect, false
	}

	// Anisotropy: world units per pixel differ between the axes when
	// the projection was stretched to the image frame.
	perPixelX := p.WorldWidth / float64(p.Width())
	perPixelY := p.WorldHeight / float64(p.Height())
	return aspect * (perPixelX / perPixelY), true
}

// Preview returns the projection scaled so its longest side is at most
// maxDim pixels. The full-resolution image is left untouched; previews
// are for display only.
func (p *Projection) Preview(maxDim int) image.Image {
	bounds := p.Image.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return p.Image
	}

	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), p.Image, bounds, xdraw.Over, nil)
	return dst
}
