package backend

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"vault-tracer/internal/roi"
)

func TestSaveROI(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":      true,
			"insideCount":  12,
			"outsideCount": 3,
		})
	}))
	defer srv.Close()

	state := roi.State{X: 0.5, Y: 0.5, Width: 0.6, Height: 0.4, Rotation: 15}
	client := NewClient(srv.URL + "/")
	result, err := client.SaveROI(context.Background(), "proj-1", state.ToPixels(1024, 768))
	if err != nil {
		t.Fatalf("SaveROI: %v", err)
	}

	if gotPath != "/api/project/save-roi" {
		t.Errorf("path = %q, want /api/project/save-roi", gotPath)
	}
	if result.InsideCount != 12 || result.OutsideCount != 3 {
		t.Errorf("result = %+v, want 12 inside / 3 outside", result)
	}

	if gotBody["projectId"] != "proj-1" {
		t.Errorf("projectId = %v, want proj-1", gotBody["projectId"])
	}
	sent, ok := gotBody["roi"].(map[string]interface{})
	if !ok {
		t.Fatalf("roi payload missing: %v", gotBody)
	}
	if sent["x"] != 512.0 || sent["y"] != 384.0 {
		t.Errorf("payload center = (%v, %v), want (512, 384)", sent["x"], sent["y"])
	}
	if sent["rotation"] != 15.0 {
		t.Errorf("payload rotation = %v, want 15", sent["rotation"])
	}
	corners, ok := sent["corners"].([]interface{})
	if !ok || len(corners) != 4 {
		t.Errorf("payload corners = %v, want 4 pairs", sent["corners"])
	}
}

func TestSaveROIBackendRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "Segmentation index not found",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.SaveROI(context.Background(), "proj-1", roi.Default().ToPixels(100, 100))
	if err == nil {
		t.Fatal("SaveROI: want error on success=false")
	}
}

func TestSaveROIHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.SaveROI(context.Background(), "p", roi.Default().ToPixels(10, 10)); err == nil {
		t.Fatal("SaveROI: want error on HTTP 500")
	}
}

func TestFetchProjectionImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projection/scan-7/file/colour" {
			http.NotFound(w, r)
			return
		}
		img := image.NewRGBA(image.Rect(0, 0, 8, 4))
		img.Set(0, 0, color.RGBA{R: 255, A: 255})
		png.Encode(w, img)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	img, err := client.FetchProjectionImage(context.Background(), "scan-7")
	if err != nil {
		t.Fatalf("FetchProjectionImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("bounds = %v, want 8x4", b)
	}
}

func TestFetchProjectionImageNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.FetchProjectionImage(context.Background(), "missing"); err == nil {
		t.Fatal("FetchProjectionImage: want error on 404")
	}
}
