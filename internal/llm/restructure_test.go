package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

type capturingClient struct {
	req   openai.ChatCompletionRequest
	reply string
	err   error
}

func (c *capturingClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.req = req
	if c.err != nil {
		return openai.ChatCompletionResponse{}, c.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Role: "assistant", Content: c.reply}}},
	}, nil
}

func TestRestructure_BuildsFixedRequest(t *testing.T) {
	client := &capturingClient{reply: "=== OVERVIEW ===\nHello"}
	r := &Restructurer{Client: client, Model: "test-model"}

	out, err := r.Restructure(context.Background(), "raw scraped text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "=== OVERVIEW ===\nHello" {
		t.Fatalf("unexpected output %q", out)
	}
	if client.req.Model != "test-model" {
		t.Fatalf("unexpected model %q", client.req.Model)
	}
	if len(client.req.Messages) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(client.req.Messages))
	}
	if !strings.Contains(client.req.Messages[0].Content, "data extraction assistant") {
		t.Fatalf("system prompt missing extraction instructions")
	}
	if client.req.Messages[1].Content != "raw scraped text" {
		t.Fatalf("user message should carry the scraped text verbatim")
	}
	if client.req.MaxTokens != maxResponseTokens {
		t.Fatalf("expected response cap %d, got %d", maxResponseTokens, client.req.MaxTokens)
	}
	if client.req.Temperature > 0.0001 {
		t.Fatalf("expected near-zero temperature, got %v", client.req.Temperature)
	}
}

func TestRestructure_TruncatesOversizedInput(t *testing.T) {
	client := &capturingClient{reply: "ok"}
	r := &Restructurer{Client: client, Model: "test-model", MaxInputTokens: 10}

	long := strings.Repeat("word ", 200)
	if _, err := r.Restructure(context.Background(), long); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.req.Messages[1].Content) >= len(long) {
		t.Fatalf("expected truncated user message")
	}
	if !strings.HasPrefix(long, client.req.Messages[1].Content) {
		t.Fatalf("truncated message must be a prefix of the input")
	}
}

func TestRestructure_TrimsReply(t *testing.T) {
	client := &capturingClient{reply: "  spaced out \n"}
	r := &Restructurer{Client: client, Model: "m"}
	out, err := r.Restructure(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "spaced out" {
		t.Fatalf("expected trimmed reply, got %q", out)
	}
}

func TestRestructure_WrapsClientError(t *testing.T) {
	client := &capturingClient{err: errors.New("backend down")}
	r := &Restructurer{Client: client, Model: "m"}
	if _, err := r.Restructure(context.Background(), "x"); err == nil || !strings.Contains(err.Error(), "backend down") {
		t.Fatalf("expected wrapped client error, got %v", err)
	}
}

func TestRestructure_NotConfigured(t *testing.T) {
	r := &Restructurer{}
	if _, err := r.Restructure(context.Background(), "x"); err == nil {
		t.Fatalf("expected configuration error")
	}
}
