package enhance

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient is a Generator backed by the Gemini API.
type GeminiClient struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string, temperature float32) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{
		client:      client,
		modelName:   modelName,
		temperature: temperature,
	}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// Generate sends system messages as the system instruction and the user
// messages as the prompt.
func (g *GeminiClient) Generate(ctx context.Context, messages []Message) (string, error) {
	// a fresh model per call keeps SystemInstruction request-scoped
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(g.temperature)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(2048)

	var system []genai.Part
	var prompt []genai.Part
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, genai.Text(m.Content))
		default:
			prompt = append(prompt, genai.Text(m.Content))
		}
	}
	if len(system) > 0 {
		model.SystemInstruction = &genai.Content{Parts: system}
	}
	if len(prompt) == 0 {
		return "", fmt.Errorf("no user message to send")
	}

	resp, err := model.GenerateContent(ctx, prompt...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", fmt.Errorf("%w (finish reason %s)", ErrEmptyResponse, cand.FinishReason)
	}

	var b strings.Builder
	for _, p := range cand.Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
