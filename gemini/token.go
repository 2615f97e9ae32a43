package gemini

import (
	"context"
	"fmt"

	llmtext "github.com/ivo-toby/llm-text-scraper"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ llmtext.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens with the Gemini tokenizer, entirely locally.
// The run summary uses it to report the artifact's approximate context
// cost without spending an API call.
type TokenCounter struct {
	local *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the local tokenizer data for the given model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	local, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer for %s: %w", model, err)
	}
	return &TokenCounter{local: local}, nil
}

// CountTokens implements llmtext.TokenCounter.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	res, err := tc.local.CountTokens([]*genai.Content{genai.NewContentFromText(text, "user")}, nil)
	if err != nil {
		return 0, llmtext.Errorf(llmtext.EINTERNAL, "token count failed: %v", err)
	}

	return int(res.TotalTokens), nil
}
