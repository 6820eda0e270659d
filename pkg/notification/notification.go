package notification

import (
	"context"
	"fmt"
	"sync"

	"HealthPortal/pkg/logger"

	"go.uber.org/zap"
)

type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

type Message struct {
	Channel Channel
	Phone   string
	Title   string
	Body    string
}

// Sender delivers one message over one channel.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender 只写日志，开发环境默认
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	logger.Info("notification",
		zap.String("channel", string(msg.Channel)),
		zap.String("phone", msg.Phone),
		zap.String("title", msg.Title),
		zap.String("body", msg.Body),
	)
	return nil
}

// Dispatcher routes messages to the sender registered for their channel.
type Dispatcher struct {
	mu       sync.RWMutex
	senders  map[Channel]Sender
	fallback Sender
}

func NewDispatcher(fallback Sender) *Dispatcher {
	if fallback == nil {
		fallback = LogSender{}
	}
	return &Dispatcher{senders: make(map[Channel]Sender), fallback: fallback}
}

func (d *Dispatcher) Register(ch Channel, s Sender) {
	d.mu.Lock()
	d.senders[ch] = s
	d.mu.Unlock()
}

func (d *Dispatcher) Send(ctx context.Context, msg Message) error {
	d.mu.RLock()
	s, ok := d.senders[msg.Channel]
	d.mu.RUnlock()
	if !ok {
		s = d.fallback
	}
	if err := s.Send(ctx, msg); err != nil {
		return fmt.Errorf("send %s to %s: %w", msg.Channel, msg.Phone, err)
	}
	return nil
}
