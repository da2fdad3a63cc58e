package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"route-resilience-service/internal/adapters/rest"
	"route-resilience-service/internal/ports"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

// GeminiSummarizer generates route narratives through the Gemini REST API.
// Output is free text with no schema guarantee; callers must run it through
// the summary validator.
type GeminiSummarizer struct {
	client  *rest.Client
	baseURL string
	apiKey  string
}

func NewGeminiSummarizer(apiKey string) *GeminiSummarizer {
	return &GeminiSummarizer{
		client:  rest.NewClient("gemini", 30*time.Second, nil),
		baseURL: defaultGeminiBaseURL,
		apiKey:  apiKey,
	}
}

// WithBaseURL overrides the API endpoint, used in tests.
func (s *GeminiSummarizer) WithBaseURL(u string) *GeminiSummarizer {
	s.baseURL = u
	return s
}

func (s *GeminiSummarizer) Available() bool { return s.apiKey != "" }

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (s *GeminiSummarizer) Generate(
	ctx context.Context,
	routes []ports.SummaryRouteContext,
	overall ports.SummaryOverallContext,
) (string, error) {
	if !s.Available() {
		return "", ports.ErrProviderUnavailable
	}

	prompt, err := buildPrompt(routes, overall)
	if err != nil {
		return "", fmt.Errorf("gemini: build prompt: %w", err)
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal: %w", err)
	}

	reqURL := s.baseURL + "?key=" + s.apiKey

	resp, err := s.client.DoWithRetry(ctx, func() (*http.Request, error) {
		return s.client.NewRequest(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	})
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	defer resp.Body.Close()

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("gemini: decode: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// buildPrompt asks for one strict JSON object keyed by route name. The shape
// mirrors what the summary validator expects; anything else lands on the
// validator's repair ladder.
func buildPrompt(routes []ports.SummaryRouteContext, overall ports.SummaryOverallContext) (string, error) {
	routeJSON, err := json.MarshalIndent(routes, "", "  ")
	if err != nil {
		return "", err
	}
	overallJSON, err := json.Marshal(overall)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("You are a logistics route analyst. Given the scored routes below, ")
	b.WriteString("write a short comparison for a dispatcher.\n\n")
	b.WriteString("Trip context:\n")
	b.Write(overallJSON)
	b.WriteString("\n\nRoutes:\n")
	b.Write(routeJSON)
	b.WriteString("\n\nRespond with ONLY a JSON object, no prose and no code fences. ")
	b.WriteString("Use each route id as a top-level key mapping to an object with fields: ")
	b.WriteString(`"route_name" (a short human name), "short_summary", "reasoning", `)
	b.WriteString(`"weather_risk_score", "road_safety_score", "social_risk_score", `)
	b.WriteString(`"traffic_risk_score" (integers 0-100), and "intermediate_cities" `)
	b.WriteString(`(at most 2 objects with "name", "lat", "lon"). `)
	b.WriteString(`Also include a top-level "ranked_routes" array of route ids, best first.`)

	return b.String(), nil
}
