// Package backend talks to the analysis service over its HTTP API.
// Segmentation, boss detection, and all downstream geometry run on the
// service side; this client only submits the edited selection and
// fetches projection images.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"vault-tracer/internal/roi"
)

// DefaultTimeout bounds a single backend request.
const DefaultTimeout = 30 * time.Second

// Client is an HTTP client for the analysis service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// BaseURL returns the configured service address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SaveROIResult carries the classification counts the service reports
// after storing a selection: how many segmentations fall inside the
// region versus outside.
type SaveROIResult struct {
	InsideCount  int `json:"insideCount"`
	OutsideCount int `json:"outsideCount"`
}

type saveROIRequest struct {
	ProjectID string       `json:"projectId"`
	ROI       roi.PixelROI `json:"roi"`
}

type saveROIResponse struct {
	Success      bool   `json:"success"`
	InsideCount  int    `json:"insideCount"`
	OutsideCount int    `json:"outsideCount"`
	Error        string `json:"error"`
}

// SaveROI submits a pixel-space selection for the given project. The
// service re-classifies every stored segmentation against the region
// and returns the inside/outside counts.
func (c *Client) SaveROI(ctx context.Context, projectID string, region roi.PixelROI) (SaveROIResult, error) {
	body, err := json.Marshal(saveROIRequest{ProjectID: projectID, ROI: region})
	if err != nil {
		return SaveROIResult{}, fmt.Errorf("failed to encode save-roi request: %w", err)
	}

	url := c.baseURL + "/api/project/save-roi"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return SaveROIResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return SaveROIResult{}, fmt.Errorf("save-roi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SaveROIResult{}, fmt.Errorf("save-roi returned HTTP %d", resp.StatusCode)
	}

	var decoded saveROIResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return SaveROIResult{}, fmt.Errorf("failed to decode save-roi response: %w", err)
	}
	if !decoded.Success {
		if decoded.Error == "" {
			decoded.Error = "unknown backend error"
		}
		return SaveROIResult{}, fmt.Errorf("save-roi rejected: %s", decoded.Error)
	}

	return SaveROIResult{
		InsideCount:  decoded.InsideCount,
		OutsideCount: decoded.OutsideCount,
	}, nil
}

// FetchProjectionImage downloads the colour projection image for the
// given projection ID and decodes it.
func (c *Client) FetchProjectionImage(ctx context.Context, projectionID string) (image.Image, error) {
	url := fmt.Sprintf("%s/api/projection/%s/file/colour", c.baseURL, projectionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("projection fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("projection fetch returned HTTP %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode projection image: %w", err)
	}
	return img, nil
}
