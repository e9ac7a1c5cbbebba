// Package dashscope drives the DashScope asynchronous text-to-image API:
// submit a job, then poll the task until a terminal status or the attempt
// budget runs out.
package dashscope

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MEKSAAA/Anti-Fake/internal/pkg/config"
	"go.uber.org/zap"
)

// Task statuses reported by the remote API.
const (
	StatusPending   = "PENDING"
	StatusRunning   = "RUNNING"
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
)

var (
	// ErrMissingAPIKey is returned when DASHSCOPE_API_KEY is not set.
	ErrMissingAPIKey = errors.New("missing DASHSCOPE_API_KEY configuration")
	// ErrPollTimeout means the attempt budget ran out while the task was
	// still pending or running. Distinct from a transport timeout.
	ErrPollTimeout = errors.New("task polling attempts exhausted")
)

// TaskFailedError carries the upstream failure detail of a FAILED task.
type TaskFailedError struct {
	TaskID string
	Detail string
}

func (e *TaskFailedError) Error() string {
	return fmt.Sprintf("task %s failed: %s", e.TaskID, e.Detail)
}

// UnexpectedStatusError is a status string outside the known set. Treated
// as a hard error, never retried.
type UnexpectedStatusError struct {
	TaskID string
	Status string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("task %s returned unexpected status %q", e.TaskID, e.Status)
}

// ImageResult is one generated image.
type ImageResult struct {
	URL string `json:"url"`
}

// TaskOutput is the payload of a SUCCEEDED task.
type TaskOutput struct {
	TaskID  string
	Results []ImageResult
}

// Client submits and polls image-generation tasks.
type Client struct {
	apiKey       string
	baseURL      string
	model        string
	pollInterval time.Duration
	maxAttempts  int
	httpClient   *http.Client
}

// New builds a client from config.
func New(cfg config.DashScopeConfig) *Client {
	return NewWithHTTPClient(cfg, &http.Client{Timeout: 30 * time.Second})
}

// NewWithHTTPClient allows injecting the HTTP client, used by tests.
func NewWithHTTPClient(cfg config.DashScopeConfig, httpClient *http.Client) *Client {
	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		model:        cfg.Model,
		pollInterval: cfg.PollInterval(),
		maxAttempts:  cfg.MaxPollAttempts,
		httpClient:   httpClient,
	}
}

type createTaskRequest struct {
	Model      string          `json:"model"`
	Input      createTaskInput `json:"input"`
	Parameters taskParameters  `json:"parameters"`
}

type createTaskInput struct {
	Prompt string `json:"prompt"`
}

type taskParameters struct {
	Size string `json:"size"`
	N    int    `json:"n"`
}

type taskResponse struct {
	Output struct {
		TaskID     string        `json:"task_id"`
		TaskStatus string        `json:"task_status"`
		Results    []ImageResult `json:"results"`
		Message    string        `json:"message"`
		Code       string        `json:"code"`
	} `json:"output"`
}

// CreateTask submits a generation job and returns the task identifier.
func (c *Client) CreateTask(ctx context.Context, prompt, size string, n int) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload := createTaskRequest{
		Model:      c.model,
		Input:      createTaskInput{Prompt: prompt},
		Parameters: taskParameters{Size: size, N: n},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal task request: %w", err)
	}

	url := c.baseURL + "/api/v1/services/aigc/text2image/image-synthesis"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-DashScope-Async", "enable")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to submit task: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("task submission returned status %d: %s", resp.StatusCode, string(detail))
	}

	var result taskResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to parse task response: %w", err)
	}
	if result.Output.TaskID == "" {
		return "", errors.New("no task_id in submission response")
	}
	return result.Output.TaskID, nil
}

// queryTask fetches the current state of a task.
func (c *Client) queryTask(ctx context.Context, taskID string) (*taskResponse, error) {
	url := fmt.Sprintf("%s/api/v1/tasks/%s", c.baseURL, taskID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query task: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("task query returned status %d: %s", resp.StatusCode, string(detail))
	}

	var result taskResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse task status: %w", err)
	}
	return &result, nil
}

// WaitForTask polls the task at a fixed interval until it reaches a
// terminal status. The interval is deliberately constant; the upstream
// service has a bounded SLA, so backoff buys nothing.
func (c *Client) WaitForTask(ctx context.Context, taskID string) (*TaskOutput, error) {
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.pollInterval):
			}
		}

		result, err := c.queryTask(ctx, taskID)
		if err != nil {
			return nil, err
		}

		switch result.Output.TaskStatus {
		case StatusSucceeded:
			return &TaskOutput{TaskID: taskID, Results: result.Output.Results}, nil
		case StatusFailed:
			detail := result.Output.Message
			if detail == "" {
				detail = result.Output.Code
			}
			return nil, &TaskFailedError{TaskID: taskID, Detail: detail}
		case StatusPending, StatusRunning:
			zap.L().Debug("task still in progress",
				zap.String("task_id", taskID),
				zap.String("status", result.Output.TaskStatus),
				zap.Int("attempt", attempt+1))
		default:
			return nil, &UnexpectedStatusError{TaskID: taskID, Status: result.Output.TaskStatus}
		}
	}
	return nil, ErrPollTimeout
}

// Download fetches a generated image.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
