package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRouterServer(t *testing.T, handler func(w http.ResponseWriter, req chatCompletionsRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		var req chatCompletionsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		handler(w, req)
	}))
}

func completionJSON(content string) string {
	resp := chatCompletionsResponse{Choices: []chatChoice{{}}}
	resp.Choices[0].Message.Content = content
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestOpenRouterComplete(t *testing.T) {
	var gotModel string
	server := openRouterServer(t, func(w http.ResponseWriter, req chatCompletionsRequest) {
		gotModel = req.Model
		w.Write([]byte(completionJSON("the answer")))
	})
	defer server.Close()

	p, err := NewOpenRouterProvider("test-key", server.URL, nil)
	require.NoError(t, err)

	text, err := p.Complete(context.Background(), []Message{User("hi")}, Options{Tier: TierStandard})
	require.NoError(t, err)
	assert.Equal(t, "the answer", text)
	assert.Equal(t, DefaultOpenRouterConfig().GetModel(TierStandard), gotModel)
}

func TestOpenRouterRequiresAPIKey(t *testing.T) {
	_, err := NewOpenRouterProvider("", "", nil)
	assert.Error(t, err)
}

func TestOpenRouterHTTPError(t *testing.T) {
	server := openRouterServer(t, func(w http.ResponseWriter, _ chatCompletionsRequest) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "rate limited"}`))
	})
	defer server.Close()

	p, err := NewOpenRouterProvider("test-key", server.URL, nil)
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), []Message{User("hi")}, Options{Tier: TierLite})
	require.Error(t, err)
	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Contains(t, providerErr.Message, "429")
}

func TestOpenRouterNoChoices(t *testing.T) {
	server := openRouterServer(t, func(w http.ResponseWriter, _ chatCompletionsRequest) {
		w.Write([]byte(`{"choices": []}`))
	})
	defer server.Close()

	p, err := NewOpenRouterProvider("test-key", server.URL, nil)
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), []Message{User("hi")}, Options{Tier: TierLite})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestOpenRouterStreamDeliversSingleChunk(t *testing.T) {
	server := openRouterServer(t, func(w http.ResponseWriter, _ chatCompletionsRequest) {
		w.Write([]byte(completionJSON("streamed")))
	})
	defer server.Close()

	p, err := NewOpenRouterProvider("test-key", server.URL, nil)
	require.NoError(t, err)

	var chunks []string
	text, err := p.Stream(context.Background(), []Message{User("hi")}, Options{Tier: TierLite}, func(chunk string) {
		chunks = append(chunks, chunk)
	})
	require.NoError(t, err)
	assert.Equal(t, "streamed", text)
	assert.Equal(t, []string{"streamed"}, chunks)
}
