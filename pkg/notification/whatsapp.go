package notification

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppLink builds a wa.me deep link with a prefilled message.
func WhatsAppLink(number, text string) string {
	number = strings.TrimPrefix(strings.TrimSpace(number), "+")
	link := "https://wa.me/" + number
	if text != "" {
		// 空格按 %20 编码
		link += "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	}
	return link
}

// WhatsAppClient is the injected transport of a WhatsApp business API.
type WhatsAppClient interface {
	SendText(ctx context.Context, to, text string) error
}

type WhatsApp struct {
	cli WhatsAppClient
}

func NewWhatsApp(cli WhatsAppClient) *WhatsApp { return &WhatsApp{cli: cli} }

func (w *WhatsApp) Send(ctx context.Context, msg Message) error {
	if w.cli == nil {
		return fmt.Errorf("WhatsAppClient not configured")
	}
	text := msg.Body
	if msg.Title != "" {
		text = msg.Title + "\n" + msg.Body
	}
	return w.cli.SendText(ctx, msg.Phone, text)
}
