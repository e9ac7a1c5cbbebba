// Package forensics calls the local deepfake-detection microservice.
package forensics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MEKSAAA/Anti-Fake/internal/pkg/config"
)

// ConnectivityError wraps a transport-level failure reaching the
// microservice, distinct from an HTTP-level upstream error.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("detection service unreachable: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// UpstreamError is a non-200 response, surfaced verbatim.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("detection service returned status %d: %s", e.StatusCode, e.Body)
}

// Result is the microservice's verdict for an image+text pair.
type Result struct {
	IsFake            bool     `json:"is_fake"`
	FakeProbability   float64  `json:"fake_probability"`
	ManipulationTypes []string `json:"manipulation_types"`
	FakeWords         []string `json:"fake_words"`
	DetectImagePath   string   `json:"detect_image_path"`
}

// Client posts detection jobs to the microservice. The timeout is
// generous; model inference on the far side is slow.
type Client struct {
	url        string
	httpClient *http.Client
}

// New builds a client from config.
func New(cfg config.ForensicsConfig) *Client {
	return NewWithHTTPClient(cfg, &http.Client{Timeout: cfg.Timeout()})
}

// NewWithHTTPClient allows injecting the HTTP client, used by tests.
func NewWithHTTPClient(cfg config.ForensicsConfig, httpClient *http.Client) *Client {
	if httpClient.Timeout == 0 {
		httpClient.Timeout = 300 * time.Second
	}
	return &Client{url: cfg.URL, httpClient: httpClient}
}

type detectRequest struct {
	ImagePath string `json:"image_path"`
	Text      string `json:"text"`
}

// Detect runs the image through the deepfake model.
func (c *Client) Detect(ctx context.Context, imagePath, text string) (*Result, error) {
	body, err := json.Marshal(detectRequest{ImagePath: imagePath, Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal detect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(detail)}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse detection response: %w", err)
	}
	return &result, nil
}
