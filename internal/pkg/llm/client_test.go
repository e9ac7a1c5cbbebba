package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

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

	return NewWithHTTPClient(config.DeepSeekConfig{
		APIKey:  "test-key",
		BaseURL: "https://deepseek.test/v1",
		Model:   "deepseek-chat",
	}, httpClient)
}

func completionResponder(content string) httpmock.Responder {
	return httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
}

func TestChatReturnsCompletion(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodPost, "https://deepseek.test/v1/chat/completions",
		completionResponder("虚假。该消息与权威报道不符。"))

	answer, err := client.Chat(context.Background(), DetectionSystemPrompt, "某地发生某事")
	require.NoError(t, err)
	assert.Equal(t, "虚假。该消息与权威报道不符。", answer)
}

func TestChatTunedSendsSamplingParameters(t *testing.T) {
	client := newTestClient(t)

	var captured map[string]interface{}
	httpmock.RegisterResponder(http.MethodPost, "https://deepseek.test/v1/chat/completions",
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&captured))
			resp, _ := completionResponder("ok")(req)
			return resp, nil
		})

	_, err := client.ChatTuned(context.Background(), ForgerySystemPrompt, "reason please", 0.3, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, captured["temperature"], 0.001)
	assert.EqualValues(t, 1000, captured["max_tokens"])
}

func TestChatMissingAPIKey(t *testing.T) {
	client := New(config.DeepSeekConfig{Model: "deepseek-chat"})

	_, err := client.Chat(context.Background(), DetectionSystemPrompt, "hello")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestChatNoChoices(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodPost, "https://deepseek.test/v1/chat/completions",
		httpmock.NewStringResponder(200, `{"choices": []}`))

	_, err := client.Chat(context.Background(), DetectionSystemPrompt, "hello")
	assert.Error(t, err)
}
