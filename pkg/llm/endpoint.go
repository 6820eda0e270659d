package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply *string `json:"reply"`
}

// EndpointAssistant posts {"message"} to a chat endpoint and reads {"reply"}
type EndpointAssistant struct {
	url    string
	client *http.Client
	logger *logrus.Logger
}

// NewEndpointAssistant creates an assistant for the given URL. A nil client
// means http.DefaultClient.
func NewEndpointAssistant(url string, client *http.Client, logger *logrus.Logger) *EndpointAssistant {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &EndpointAssistant{url: url, client: client, logger: logger}
}

func (h *EndpointAssistant) Reply(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(chatRequest{Message: text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.WithError(err).WithField("url", h.url).Warn("chat endpoint unreachable")
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// 读一点响应体方便排查
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		h.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(snippet),
		}).Warn("chat endpoint returned error status")
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if out.Reply == nil {
		return EmptyReply, nil
	}
	h.logger.WithField("len", len(*out.Reply)).Debug("chat endpoint replied")
	return orEmpty(*out.Reply), nil
}
