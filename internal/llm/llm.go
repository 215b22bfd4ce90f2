// Package llm is an optional remote chat-completion client. Nothing in the
// resolution engine depends on it; tasks that want model assistance (e.g.
// summarizing a validation report) construct a Client explicitly and must
// handle UnavailableError when the environment is not configured.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/specialistvlad/pathweaver/internal/settings"
)

// UnavailableError signals that chat features were requested without the
// required environment configuration.
type UnavailableError struct {
	Reason string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("llm features unavailable: %s", e.Reason)
}

// Client wraps a chat-completion API endpoint.
type Client struct {
	api openai.Client
}

// New builds a client from OPENAI_API_KEY and the optional OPENAI_BASE_URL.
func New() (*Client, error) {
	key := settings.Get(settings.EnvOpenAIAPIKey, "")
	if key == "" {
		return nil, &UnavailableError{
			Reason: settings.EnvOpenAIAPIKey + " is not set; create a .env from .env_template and set your key",
		}
	}

	opts := []option.RequestOption{option.WithAPIKey(key)}
	if base := settings.Get(settings.EnvOpenAIBaseURL, ""); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}

	return &Client{api: openai.NewClient(opts...)}, nil
}

// Chat sends a system-less, single-user-message completion request and
// returns the first choice's text.
func (c *Client) Chat(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
