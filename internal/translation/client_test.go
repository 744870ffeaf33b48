package translation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	_, err := NewClient(ctx, ClientOptions{Provider: ProviderOpenAI})
	assert.ErrorIs(t, err, ErrNoClient)

	_, err = NewClient(ctx, ClientOptions{Provider: "mystery", APIKey: "k"})
	assert.Error(t, err)

	c, err := NewClient(ctx, ClientOptions{APIKey: "k", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)
}

func TestOpenAIClientTranslate(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  [General]\nTheme = Thema\n"}}],"usage":{"prompt_tokens":10,"completion_tokens":4}}`))
	}))
	defer srv.Close()

	oc := NewOpenAIClient("secret", "gpt-4o-mini", srv.URL+"/")
	reply, err := oc.Translate(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, "[General]\nTheme = Thema", reply)

	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chatMessage{Role: "system", Content: "system"}, got.Messages[0])
	assert.Equal(t, chatMessage{Role: "user", Content: "user"}, got.Messages[1])
}

func TestOpenAIClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http status", status: http.StatusTooManyRequests, body: `{"error":{"message":"slow down","type":"rate_limit"}}`},
		{name: "api error", status: http.StatusOK, body: `{"error":{"message":"bad model","type":"invalid_request_error"}}`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`},
		{name: "not json", status: http.StatusOK, body: `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewOpenAIClient("k", "m", srv.URL).Translate(context.Background(), "s", "u")
			assert.Error(t, err)
			assert.Equal(t, 1, calls)
		})
	}
}
