package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"route-resilience-service/internal/ports"
)

func TestGeminiGenerateReturnsRawText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		prompt := req.Contents[0].Parts[0].Text
		require.Contains(t, prompt, "Route 1")
		require.Contains(t, prompt, "ranked_routes")

		fmt.Fprint(w, `{
			"candidates": [{
				"content": {"parts": [{"text": "{\"Route 1\": {\"short_summary\": \"ok\"}}"}]}
			}]
		}`)
	}))
	defer srv.Close()

	s := NewGeminiSummarizer("test-key").WithBaseURL(srv.URL)
	require.True(t, s.Available())

	raw, err := s.Generate(context.Background(), []ports.SummaryRouteContext{
		{ID: "Route 1", TotalDistance: "12 km", TotalTime: "20 mins"},
	}, ports.SummaryOverallContext{Origin: "Delhi", Destination: "Jaipur"})
	require.NoError(t, err)
	require.JSONEq(t, `{"Route 1": {"short_summary": "ok"}}`, raw)
}

func TestGeminiEmptyCandidatesIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates": []}`)
	}))
	defer srv.Close()

	s := NewGeminiSummarizer("test-key").WithBaseURL(srv.URL)
	_, err := s.Generate(context.Background(), nil, ports.SummaryOverallContext{})
	require.Error(t, err)
}

func TestGeminiUnavailableWithoutKey(t *testing.T) {
	require.False(t, NewGeminiSummarizer("").Available())
}
