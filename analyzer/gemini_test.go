package analyzer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeGemini(t *testing.T, status int, body string, gotRequest *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotRequest != nil {
			data, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(data, gotRequest)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewGeminiGeneratorRequiresAPIKey(t *testing.T) {
	gen, err := NewGeminiGenerator(context.Background(), GeminiConfig{})
	assert.Error(t, err)
	assert.Nil(t, gen)
}

func TestGeminiGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("TextAndGroundingChunks", func(t *testing.T) {
		body := `{
		  "candidates": [{
		    "content": {"role": "model", "parts": [{"text": "Sure.\n` + "```json" + `\n{\"overallScore\": 72}\n` + "```" + `"}]},
		    "groundingMetadata": {
		      "groundingChunks": [
		        {"web": {"uri": "https://a.test", "title": "A"}},
		        {"web": {"uri": "https://b.test", "title": ""}}
		      ]
		    }
		  }]
		}`
		var sent map[string]any
		srv := newFakeGemini(t, http.StatusOK, body, &sent)

		gen, err := NewGeminiGenerator(ctx, GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
		require.NoError(t, err)

		out, err := gen.Generate(ctx, "analyze https://example.com")
		require.NoError(t, err)
		assert.True(t, strings.Contains(out.Text, `{"overallScore": 72}`))
		assert.Equal(t, []GroundingChunk{
			{Web: GroundingWeb{URI: "https://a.test", Title: "A"}},
			{Web: GroundingWeb{URI: "https://b.test", Title: ""}},
		}, out.GroundingChunks)

		tools, ok := sent["tools"].([]any)
		require.True(t, ok, "request should carry tools")
		require.Len(t, tools, 1)
		assert.Contains(t, tools[0], "googleSearch")
	})

	t.Run("NoGroundingMetadata", func(t *testing.T) {
		body := `{"candidates": [{"content": {"role": "model", "parts": [{"text": "hello"}]}}]}`
		srv := newFakeGemini(t, http.StatusOK, body, nil)

		gen, err := NewGeminiGenerator(ctx, GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
		require.NoError(t, err)

		out, err := gen.Generate(ctx, "prompt")
		require.NoError(t, err)
		assert.Equal(t, "hello", out.Text)
		assert.NotNil(t, out.GroundingChunks)
		assert.Empty(t, out.GroundingChunks)
	})

	t.Run("UpstreamError", func(t *testing.T) {
		body := `{"error": {"code": 403, "message": "API key not valid", "status": "PERMISSION_DENIED"}}`
		srv := newFakeGemini(t, http.StatusForbidden, body, nil)

		gen, err := NewGeminiGenerator(ctx, GeminiConfig{APIKey: "bad-key", BaseURL: srv.URL})
		require.NoError(t, err)

		out, err := gen.Generate(ctx, "prompt")
		assert.Nil(t, out)
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	})
}
