package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// OpenAIProviderID tags advice produced by the OpenAI-compatible provider.
const OpenAIProviderID = "openai"

const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = openai.GPT4oMini
)

// OpenAIService implements adapter.AdvisoryProvider against any OpenAI-compatible
// chat completions endpoint.
type OpenAIService struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAIService creates a new OpenAI-compatible provider. A nil httpClient uses http.DefaultClient.
func NewOpenAIService(apiKey, baseURL, model string, httpClient *http.Client) *OpenAIService {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.HTTPClient = httpClient

	return &OpenAIService{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

// ID returns the provider identifier.
func (s *OpenAIService) ID() string {
	return OpenAIProviderID
}

// IsAvailable checks if the provider has credentials.
func (s *OpenAIService) IsAvailable() bool {
	return s.apiKey != ""
}

// Advise asks the chat completions endpoint for advice on the context.
func (s *OpenAIService) Advise(ctx context.Context, adviceCtx *adapter.AdviceContext) ([]*entity.AdviceItem, error) {
	if !s.IsAvailable() {
		return nil, errors.New("openai provider is not configured")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You answer only with JSON."},
			{Role: openai.ChatMessageRoleUser, Content: buildAdvicePrompt(adviceCtx)},
		},
		Temperature: 0.3,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, completionError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("malformed answer: no choices in response")
	}

	return parseAdviceAnswer(resp.Choices[0].Message.Content)
}

// completionError rephrases SDK errors so the aggregator can classify them.
func completionError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := ""
		if reqErr.Err != nil {
			detail = reqErr.Err.Error()
		}
		return statusError(reqErr.HTTPStatusCode, detail)
	}
	return fmt.Errorf("connection to openai provider failed: %w", err)
}

// statusError phrases HTTP failures so the aggregator can classify them.
func statusError(status int, detail string) error {
	snippet := strings.TrimSpace(detail)
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}

	switch {
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("openai provider rate limit (429): %s", snippet)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("openai provider unauthorized (%d): %s", status, snippet)
	case status >= 500:
		return fmt.Errorf("openai provider unavailable (%d): %s", status, snippet)
	default:
		return fmt.Errorf("openai provider request failed (%d): %s", status, snippet)
	}
}

var _ adapter.AdvisoryProvider = (*OpenAIService)(nil)
