// Package vision implements the external vision-model boundary over an
// OpenAI-compatible chat completion endpoint (Gemini exposes one).
package vision

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"infraghost/backend/internal/config"
)

// Client sends one prompt plus one inline image and returns the raw model
// text. It performs no retries and no response parsing.
type Client struct {
	chatModel model.ChatModel
	modelID   string
}

// NewClient builds the chat model from configuration.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.GeminiBaseURL,
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
	})
	if err != nil {
		return nil, fmt.Errorf("chat model init: %w", err)
	}
	return &Client{chatModel: chatModel, modelID: cfg.GeminiModel}, nil
}

// ModelID returns the configured model identifier.
func (c *Client) ModelID() string {
	return c.modelID
}

// Generate implements analysis.Generator. The image travels as an inline
// data URI part next to the prompt text.
func (c *Client) Generate(ctx context.Context, prompt, imageBase64, mimeType string) (string, error) {
	messages := []*schema.Message{
		{
			Role: schema.User,
			MultiContent: []schema.ChatMessagePart{
				{
					Type: schema.ChatMessagePartTypeText,
					Text: prompt,
				},
				{
					Type: schema.ChatMessagePartTypeImageURL,
					ImageURL: &schema.ChatMessageImageURL{
						URL:      dataURI(imageBase64, mimeType),
						MIMEType: mimeType,
						Detail:   schema.ImageURLDetailAuto,
					},
				},
			},
		},
	}

	resp, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func dataURI(imageBase64, mimeType string) string {
	if strings.HasPrefix(imageBase64, "data:") {
		return imageBase64
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, imageBase64)
}
