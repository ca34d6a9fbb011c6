package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_NotConfigured(t *testing.T) {
	c := NewClient("")

	_, err := c.Send(context.Background(), "hello")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestSend_HappyPath(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [
				{"content": {"role": "model", "parts": [{"text": "Try the "}, {"text": "Royal Oud."}]}},
				{"content": {"role": "model", "parts": [{"text": "ignored second candidate"}]}}
			],
			"usageMetadata": {"totalTokenCount": 42}
		}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL), WithModel("gemini-2.5-flash"))

	reply, err := c.Send(context.Background(), "recommend an oriental perfume")
	require.NoError(t, err)
	assert.Equal(t, "Try the Royal Oud.", reply)

	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Contains(t, gotBody, "systemInstruction")
	assert.Contains(t, gotBody, "contents")
}

func TestSend_UpstreamErrorPreservesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))

	_, err := c.Send(context.Background(), "hello")

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusTooManyRequests, upErr.StatusCode)
	assert.Contains(t, upErr.Detail, "quota exceeded")
}

func TestSend_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))

	_, err := c.Send(context.Background(), "hello")

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
}

func TestSend_UnreachableUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before use

	c := NewClient("test-key", WithBaseURL(srv.URL))

	_, err := c.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotConfigured))
}

func TestDecodeReply_MalformedJSON(t *testing.T) {
	_, err := decodeReply([]byte(`{"candidates": [`))
	require.Error(t, err)
}
