// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// GeminiProviderID tags advice produced by Gemini.
const GeminiProviderID = "gemini"

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiService implements adapter.AdvisoryProvider and adapter.InsightElaborator using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string

	// generate sends one prompt and returns the text answer. Replaced in tests.
	generate func(ctx context.Context, prompt string) (string, error)
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	s := &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
	s.generate = s.generateContent
	return s
}

// ID returns the provider identifier.
func (s *GeminiService) ID() string {
	return GeminiProviderID
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Advise asks Gemini for advice on the context.
func (s *GeminiService) Advise(ctx context.Context, adviceCtx *adapter.AdviceContext) ([]*entity.AdviceItem, error) {
	if !s.IsAvailable() {
		return nil, errors.New("gemini service is not configured")
	}

	text, err := s.generate(ctx, buildAdvicePrompt(adviceCtx))
	if err != nil {
		return nil, err
	}

	return parseAdviceAnswer(text)
}

// Elaborate asks Gemini to rephrase the recommendations.
func (s *GeminiService) Elaborate(ctx context.Context, recommendations []string, locale string) ([]string, error) {
	if !s.IsAvailable() {
		return nil, errors.New("gemini service is not configured")
	}

	text, err := s.generate(ctx, buildElaborationPrompt(recommendations, locale))
	if err != nil {
		return nil, err
	}

	return parseElaboration(text, len(recommendations))
}

func (s *GeminiService) generateContent(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return responseText(resp)
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("malformed answer: empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if sb.Len() == 0 {
		return "", errors.New("malformed answer: no text content in response")
	}
	return sb.String(), nil
}

var (
	_ adapter.AdvisoryProvider  = (*GeminiService)(nil)
	_ adapter.InsightElaborator = (*GeminiService)(nil)
)
