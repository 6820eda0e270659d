package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultWhatsAppAPIURL Graph API 根地址
const DefaultWhatsAppAPIURL = "https://graph.facebook.com/v19.0"

type WhatsAppCloudConfig struct {
	APIURL  string
	Token   string
	PhoneID string // 发送方号码 ID
}

// WhatsAppCloud implements WhatsAppClient over the WhatsApp Cloud API.
type WhatsAppCloud struct {
	cfg    WhatsAppCloudConfig
	client *http.Client
}

type waTextMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

func NewWhatsAppCloud(cfg WhatsAppCloudConfig, client *http.Client) *WhatsAppCloud {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultWhatsAppAPIURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &WhatsAppCloud{cfg: cfg, client: client}
}

func (w *WhatsAppCloud) SendText(ctx context.Context, to, text string) error {
	msg := waTextMessage{MessagingProduct: "whatsapp", To: strings.TrimPrefix(to, "+"), Type: "text"}
	msg.Text.Body = text
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(w.cfg.APIURL, "/") + "/" + w.cfg.PhoneID + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.cfg.Token)

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp api status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}
