package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// OpenAIAssistant talks to any OpenAI-compatible chat completion API.
// Each Reply is a single-turn exchange: the portal keeps the history itself.
type OpenAIAssistant struct {
	client       *openai.Client
	model        string
	systemPrompt string
	logger       *logrus.Logger
}

func NewOpenAIAssistant(apiKey, baseURL, model, systemPrompt string, logger *logrus.Logger) *OpenAIAssistant {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OpenAIAssistant{
		client:       openai.NewClientWithConfig(cfg),
		model:        model,
		systemPrompt: systemPrompt,
		logger:       logger,
	}
}

func (h *OpenAIAssistant) Reply(ctx context.Context, text string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if h.systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: h.systemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: text})

	resp, err := h.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    h.model,
		Messages: messages,
	})
	if err != nil {
		h.logger.WithError(err).WithField("model", h.model).Warn("chat completion failed")
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return EmptyReply, nil
	}
	h.logger.WithFields(logrus.Fields{
		"model":  h.model,
		"tokens": resp.Usage.TotalTokens,
	}).Debug("chat completion done")
	return orEmpty(resp.Choices[0].Message.Content), nil
}
