package projection

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestImage(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func TestLoadWithMetadata(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "bay3_colour.png")
	writeTestImage(t, imgPath, 400, 200)

	meta := `{"range_vals": [12.0, 4.0]}`
	if err := os.WriteFile(filepath.Join(dir, "bay3_metadata.json"), []byte(meta), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(imgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.ID != "bay3" {
		t.Errorf("ID = %q, want bay3", p.ID)
	}
	if p.Width() != 400 || p.Height() != 200 {
		t.Errorf("size = %dx%d, want 400x200", p.Width(), p.Height())
	}
	if p.WorldWidth != 12 || p.WorldHeight != 4 {
		t.Errorf("world extents = %gx%g, want 12x4", p.WorldWidth, p.WorldHeight)
	}
}

func TestLoadWithoutMetadata(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "scan_colour.png")
	writeTestImage(t, imgPath, 100, 50)

	p, err := Load(imgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.WorldWidth != 0 || p.WorldHeight != 0 {
		t.Errorf("world extents = %gx%g, want none", p.WorldWidth, p.WorldHeight)
	}
}

func TestVaultRatio(t *testing.T) {
	// Pixel aspect 2:1 but world extents 12x4: the world ratio wins.
	p := New("t", image.NewRGBA(image.Rect(0, 0, 400, 200)))
	p.WorldWidth, p.WorldHeight = 12, 4

	got, fromWorld := p.VaultRatio()
	if !fromWorld {
		t.Error("fromWorld = false, want true")
	}
	// aspect 2 * ((12/400)/(4/200)) = 2 * 1.5 = 3
	if got != 3 {
		t.Errorf("VaultRatio = %f, want 3", got)
	}
}

func TestVaultRatioFallsBackToAspect(t *testing.T) {
	p := New("t", image.NewRGBA(image.Rect(0, 0, 300, 200)))
	got, fromWorld := p.VaultRatio()
	if fromWorld {
		t.Error("fromWorld = true without metadata")
	}
	if got != 1.5 {
		t.Errorf("VaultRatio = %f, want 1.5", got)
	}
}

func TestPreviewScalesDown(t *testing.T) {
	p := New("t", image.NewRGBA(image.Rect(0, 0, 2000, 1000)))
	preview := p.Preview(500)
	if b := preview.Bounds(); b.Dx() != 500 || b.Dy() != 250 {
		t.Errorf("preview = %dx%d, want 500x250", b.Dx(), b.Dy())
	}

	// Small images pass through untouched.
	small := New("s", image.NewRGBA(image.Rect(0, 0, 80, 40)))
	if got := small.Preview(500); got != small.Image {
		t.Error("small image should not be rescaled")
	}
}
