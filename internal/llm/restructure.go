package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/structify/scrapechat/internal/budget"
)

// systemPrompt describes the extraction contract the model must follow. It
// is fixed; the scraped document is the only variable input.
const systemPrompt = `You are a data extraction assistant.

Your task is to extract and structure content from raw HTML copied from a public website.

Rules:
- DO NOT summarize, rewrite, or infer anything.
- Preserve ALL meaningful visible content.
- Remove all non-content elements: scripts, nav menus, cookie banners, footers, ads, accessibility or legal notices, etc.
- Group content by visible headings (e.g., OVERVIEW, EVENT DETAILS, FAQ, etc.)
- Keep line breaks, bullet points, and original wording.
- Use this format:

=== HEADING TITLE ===
(Original content...)

- Return plain text only. No HTML, JSON, or explanations.`

// maxResponseTokens bounds the assistant reply.
const maxResponseTokens = 4096

// Restructurer asks the chat model to clean a scraped structured document.
type Restructurer struct {
	Client Client
	Model  string
	// MaxInputTokens caps the user message; zero means budget.MaxInputTokens.
	MaxInputTokens int
}

// Restructure sends the scraped text to the model, truncating it to the
// input token budget first, and returns the trimmed assistant reply.
func (r *Restructurer) Restructure(ctx context.Context, raw string) (string, error) {
	if r.Client == nil || strings.TrimSpace(r.Model) == "" {
		return "", errors.New("restructurer not configured")
	}
	maxInput := r.MaxInputTokens
	if maxInput <= 0 {
		maxInput = budget.MaxInputTokens
	}
	input, removed := budget.Truncate(raw, maxInput)
	if removed > 0 {
		log.Warn().Int("tokens_removed", removed).Msg("scraped content truncated before model call")
	}

	req := openai.ChatCompletionRequest{
		Model: r.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: input},
		},
		// A literal zero is dropped by omitempty and the server would fall
		// back to its own default; the smallest nonzero float pins sampling
		// to temperature zero on the wire.
		Temperature: math.SmallestNonzeroFloat32,
		MaxTokens:   maxResponseTokens,
		N:           1,
	}
	resp, err := r.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
