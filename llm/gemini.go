package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/logger"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/observability"
	"go.uber.org/zap"
)

var (
	ErrAssistantUnavailable  = errors.New("assistant unavailable")
	ErrAssistantUnconfigured = errors.New("assistant API key not configured")
)

type GenerateContentRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type Candidate struct {
	Content Content `json:"content"`
}

type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// DefaultGenerationConfig is sent with every request.
var DefaultGenerationConfig = GenerationConfig{
	Temperature:     0.7,
	TopK:            40,
	TopP:            0.95,
	MaxOutputTokens: 1024,
}

// Assistant answers a user message given their profile and prior turns.
type Assistant interface {
	Configured() bool
	Ask(ctx context.Context, message string, profile models.UserProfile, history []models.ChatTurn) (string, error)
}

type GeminiClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	metrics    *observability.Metrics
}

func NewGeminiClient(apiKey, endpoint string, timeout time.Duration, metrics *observability.Metrics) *GeminiClient {
	if metrics == nil {
		metrics = observability.Default
	}
	return &GeminiClient{
		apiKey:     apiKey,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		metrics:    metrics,
	}
}

var _ Assistant = (*GeminiClient)(nil)

func (g *GeminiClient) Configured() bool {
	return g != nil && g.apiKey != ""
}

// Ask makes a single generateContent call. Any transport failure, non-2xx
// status or unexpected response shape is reported as ErrAssistantUnavailable.
func (g *GeminiClient) Ask(ctx context.Context, message string, profile models.UserProfile, history []models.ChatTurn) (string, error) {
	if !g.Configured() {
		g.metrics.AssistantRequests.WithLabelValues("unconfigured").Inc()
		return "", ErrAssistantUnconfigured
	}

	started := time.Now()
	reply, err := g.generate(ctx, BuildPrompt(message, profile, history))
	if err != nil {
		g.metrics.ObserveAssistant(observability.OutcomeError, started)
		logger.Get().Error("assistant request failed",
			zap.String("user_id", profile.UserID),
			zap.Error(err))
		return "", err
	}

	g.metrics.ObserveAssistant(observability.OutcomeSuccess, started)
	return reply, nil
}

func (g *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := GenerateContentRequest{
		Contents:         []Content{{Parts: []Part{{Text: prompt}}}},
		GenerationConfig: DefaultGenerationConfig,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: encoding request: %v", ErrAssistantUnavailable, err)
	}

	endpoint, err := url.Parse(g.endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: invalid endpoint: %v", ErrAssistantUnavailable, err)
	}
	q := endpoint.Query()
	q.Set("key", g.apiKey)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssistantUnavailable, redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Get().Warn("assistant returned error status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return "", fmt.Errorf("%w: API error: %d", ErrAssistantUnavailable, resp.StatusCode)
	}

	var out GenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrAssistantUnavailable, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 || out.Candidates[0].Content.Parts[0].Text == "" {
		return "", fmt.Errorf("%w: invalid response format", ErrAssistantUnavailable)
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// redact strips the request URL, which carries the API key, from transport errors.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
