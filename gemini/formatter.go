// Package gemini formats documentation text and counts tokens using
// Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	llmtext "github.com/ivo-toby/llm-text-scraper"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

const systemInstruction = `You are optimizing technical documentation for AI consumption.

TASK:
- Summarize key points while preserving important technical details.
- Extract and format API methods, parameters, and example code properly.
- Ensure clarity, remove redundant or unnecessary text.
- Keep the output plain text that language models can consume directly.
- Compress the output so it costs fewer tokens without losing information.`

// Ensure Formatter implements llmtext.Formatter at compile time.
var _ llmtext.Formatter = (*Formatter)(nil)

// Formatter rewrites extracted page text through Gemini.
type Formatter struct {
	client *genai.Client
	model  string
}

// NewFormatter creates a Formatter backed by the given client.
// An empty model selects DefaultModel.
func NewFormatter(client *genai.Client, model string) *Formatter {
	if model == "" {
		model = DefaultModel
	}
	return &Formatter{client: client, model: model}
}

// NewClient connects to the Gemini API with the given key.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// BuildConfig returns the GenerateContentConfig for formatting calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature: &temp,
	}
}

// BuildPrompt builds the user message carrying a page's text and source URL.
func BuildPrompt(text, pageURL string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Source: %s\n\n", pageURL)
	sb.WriteString("Raw documentation:\n")
	sb.WriteString(text)
	return sb.String()
}

// Format implements llmtext.Formatter. Empty input returns empty without
// an API call.
func (f *Formatter) Format(ctx context.Context, text, pageURL string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	result, err := f.client.Models.GenerateContent(ctx, f.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildPrompt(text, pageURL)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", llmtext.Errorf(llmtext.EUNAVAILABLE, "gemini request failed: %v", err)
	}
	if result == nil {
		return "", llmtext.Errorf(llmtext.EUNAVAILABLE, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}
