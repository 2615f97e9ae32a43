// Package openai formats extracted documentation text through the OpenAI
// chat completions API.
package openai

import (
	"context"
	"fmt"
	"strings"

	llmtext "github.com/ivo-toby/llm-text-scraper"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o-mini"

const (
	temperature         = 0.3
	maxCompletionTokens = 2000
)

// systemPrompt instructs the model to compress documentation text while
// keeping API details intact.
const systemPrompt = `You are optimizing technical documentation for AI consumption.

TASK:
- Summarize key points while preserving important technical details.
- Extract and format API methods, parameters, and example code properly.
- Ensure clarity, remove redundant or unnecessary text.
- Keep the output plain text that language models can consume directly.
- Compress the output so it costs fewer tokens without losing information.`

// Ensure Formatter implements llmtext.Formatter at compile time.
var _ llmtext.Formatter = (*Formatter)(nil)

// Formatter rewrites extracted page text through an OpenAI chat completion.
type Formatter struct {
	client openai.Client
	model  string
}

// NewFormatter creates a Formatter using the given API key.
// An empty model selects DefaultModel.
func NewFormatter(apiKey, model string) *Formatter {
	if model == "" {
		model = DefaultModel
	}
	return &Formatter{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
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

	resp, err := f.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: f.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildPrompt(text, pageURL)),
		},
		Temperature:         openai.Float(temperature),
		MaxCompletionTokens: openai.Int(maxCompletionTokens),
	})
	if err != nil {
		return "", llmtext.Errorf(llmtext.EUNAVAILABLE, "chat completion failed: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", llmtext.Errorf(llmtext.EUNAVAILABLE, "chat completion returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
