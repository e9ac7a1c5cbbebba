package dashscope

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MEKSAAA/Anti-Fake/internal/pkg/config"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	httpClient := &http.Client{}
	httpmock.ActivateNonDefault(httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	return NewWithHTTPClient(config.DashScopeConfig{
		APIKey:              "test-key",
		BaseURL:             "https://dashscope.test",
		Model:               "wanx2.1-t2i-turbo",
		PollIntervalSeconds: 1,
		MaxPollAttempts:     30,
	}, httpClient)
}

func statusBody(status string) string {
	return fmt.Sprintf(`{"output": {"task_id": "task-1", "task_status": "%s"}}`, status)
}

func TestCreateTask(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPost,
		"https://dashscope.test/api/v1/services/aigc/text2image/image-synthesis",
		httpmock.NewStringResponder(200, `{"output": {"task_id": "task-1", "task_status": "PENDING"}}`))

	taskID, err := client.CreateTask(context.Background(), "一只猫", "1024*1024", 1)
	require.NoError(t, err)
	assert.Equal(t, "task-1", taskID)
}

func TestCreateTaskMissingKey(t *testing.T) {
	client := NewWithHTTPClient(config.DashScopeConfig{BaseURL: "https://dashscope.test"}, &http.Client{})

	_, err := client.CreateTask(context.Background(), "一只猫", "1024*1024", 1)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestWaitForTaskPollsUntilSucceeded(t *testing.T) {
	client := newTestClient(t)
	client.pollInterval = 0

	responses := []string{
		statusBody(StatusPending),
		statusBody(StatusRunning),
		`{"output": {"task_id": "task-1", "task_status": "SUCCEEDED", "results": [{"url": "https://cdn.test/a.png"}]}}`,
	}
	calls := 0
	httpmock.RegisterResponder(http.MethodGet, "https://dashscope.test/api/v1/tasks/task-1",
		func(*http.Request) (*http.Response, error) {
			body := responses[calls]
			calls++
			return httpmock.NewStringResponse(200, body), nil
		})

	output, err := client.WaitForTask(context.Background(), "task-1")
	require.NoError(t, err)
	require.Len(t, output.Results, 1)
	assert.Equal(t, "https://cdn.test/a.png", output.Results[0].URL)
	assert.Equal(t, 3, calls, "polling must stop at the first terminal status")
}

func TestWaitForTaskExhaustsAttempts(t *testing.T) {
	client := newTestClient(t)
	client.pollInterval = 0

	httpmock.RegisterResponder(http.MethodGet, "https://dashscope.test/api/v1/tasks/task-1",
		httpmock.NewStringResponder(200, statusBody(StatusPending)))

	_, err := client.WaitForTask(context.Background(), "task-1")
	assert.ErrorIs(t, err, ErrPollTimeout)
	assert.Equal(t, 30, httpmock.GetTotalCallCount())
}

func TestWaitForTaskReturnsImmediatelyWhenExhausted(t *testing.T) {
	client := newTestClient(t)
	client.pollInterval = time.Hour
	client.maxAttempts = 1

	httpmock.RegisterResponder(http.MethodGet, "https://dashscope.test/api/v1/tasks/task-1",
		httpmock.NewStringResponder(200, statusBody(StatusPending)))

	done := make(chan error, 1)
	go func() {
		_, err := client.WaitForTask(context.Background(), "task-1")
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrPollTimeout)
	case <-time.After(2 * time.Second):
		t.Fatal("exhaustion must not wait out the interval after the last attempt")
	}
}

func TestWaitForTaskFailed(t *testing.T) {
	client := newTestClient(t)
	client.pollInterval = 0

	httpmock.RegisterResponder(http.MethodGet, "https://dashscope.test/api/v1/tasks/task-1",
		httpmock.NewStringResponder(200,
			`{"output": {"task_id": "task-1", "task_status": "FAILED", "message": "content policy violation"}}`))

	_, err := client.WaitForTask(context.Background(), "task-1")
	var failed *TaskFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, "task-1", failed.TaskID)
	assert.Contains(t, failed.Detail, "content policy")
	assert.Equal(t, 1, httpmock.GetTotalCallCount(), "FAILED is terminal, no retry")
}

func TestWaitForTaskUnknownStatus(t *testing.T) {
	client := newTestClient(t)
	client.pollInterval = 0

	httpmock.RegisterResponder(http.MethodGet, "https://dashscope.test/api/v1/tasks/task-1",
		httpmock.NewStringResponder(200, statusBody("CANCELED")))

	_, err := client.WaitForTask(context.Background(), "task-1")
	var unexpected *UnexpectedStatusError
	require.True(t, errors.As(err, &unexpected))
	assert.Equal(t, "CANCELED", unexpected.Status)
	assert.Equal(t, 1, httpmock.GetTotalCallCount(), "unknown status is terminal, no retry")
}

func TestWaitForTaskContextCanceled(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, "https://dashscope.test/api/v1/tasks/task-1",
		httpmock.NewStringResponder(200, statusBody(StatusPending)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.WaitForTask(ctx, "task-1")
	assert.ErrorIs(t, err, context.Canceled)
}
