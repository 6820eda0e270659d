package panel

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"HealthPortal/internal/models"
	"HealthPortal/pkg/errors"
	"HealthPortal/pkg/llm"
	"HealthPortal/pkg/logger"
	"HealthPortal/pkg/store"
	"HealthPortal/pkg/util"
)

// 聊天结果，metrics 的 outcome 标签
const (
	ChatOutcomeReplied   = "replied"
	ChatOutcomeFallback  = "fallback"
	ChatOutcomeCancelled = "cancelled"
)

var (
	ErrBlankMessage = errors.Invalid("message text is required")
	ErrChatClosed   = errors.WithCode(errors.CodeUnavailable, "chat is closed")
)

// Chat 聊天记录和助手调用。每次交换都绑定调用方 ctx 和控制器生命周期，
// 任一取消后迟到的回复被丢弃
type Chat struct {
	repo      store.Repository[models.ChatMessage]
	assistant llm.Assistant
	timeout   time.Duration
	opts      Options

	life   context.Context
	cancel context.CancelFunc
}

func NewChat(assistant llm.Assistant, timeout time.Duration, opts Options) *Chat {
	opts = opts.withDefaults()
	life, cancel := context.WithCancel(context.Background())
	greeting := models.ChatMessage{
		ID:        util.NewID(),
		Text:      models.ChatGreeting,
		Sender:    models.SenderAI,
		Timestamp: opts.Clock(),
	}
	return &Chat{
		repo:      store.NewMemory(store.Append, greeting),
		assistant: assistant,
		timeout:   timeout,
		opts:      opts,
		life:      life,
		cancel:    cancel,
	}
}

func (c *Chat) Messages() []models.ChatMessage { return c.repo.List() }

// Send 追加用户消息并等待助手回复，返回本次新增的消息。
// 只含空白的文本返回 ErrBlankMessage，Close 之后返回 ErrChatClosed，两者都不修改记录
func (c *Chat) Send(ctx context.Context, text string) ([]models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrBlankMessage
	}
	if c.life.Err() != nil {
		return nil, ErrChatClosed
	}
	userMsg := models.ChatMessage{
		ID:        util.NewID(),
		Text:      text,
		Sender:    models.SenderUser,
		Timestamp: c.opts.Clock(),
	}
	c.repo.Add(userMsg)
	c.opts.emit(PanelChat, "message", userMsg)

	exCtx, cancel := c.bind(ctx)
	defer cancel()

	begin := time.Now()
	reply, err := c.reply(exCtx, text)
	took := time.Since(begin)

	// 超时按失败处理，调用方或生命周期取消才丢弃
	if ctx.Err() != nil || c.life.Err() != nil {
		logger.Debug("chat reply dropped", zap.NamedError("caller", ctx.Err()), zap.NamedError("life", c.life.Err()))
		c.opts.Observer.RecordChatExchange(ChatOutcomeCancelled, took)
		return []models.ChatMessage{userMsg}, nil
	}

	outcome := ChatOutcomeReplied
	if err != nil {
		logger.Warn("chat assistant failed", zap.Error(err))
		reply = models.ChatFallbackText
		outcome = ChatOutcomeFallback
	}
	c.opts.Observer.RecordChatExchange(outcome, took)

	aiMsg := models.ChatMessage{
		ID:        util.NewID(),
		Text:      reply,
		Sender:    models.SenderAI,
		Timestamp: c.opts.Clock(),
	}
	c.repo.Add(aiMsg)
	c.opts.Publisher.Publish(PanelChat, "message", aiMsg)
	return []models.ChatMessage{userMsg, aiMsg}, nil
}

func (c *Chat) reply(ctx context.Context, text string) (string, error) {
	if c.assistant == nil {
		return "", llm.ErrUnavailable
	}
	reply, err := c.assistant.Reply(ctx, text)
	if err != nil {
		return "", err
	}
	if reply == "" {
		reply = models.ChatEmptyReply
	}
	return reply, nil
}

// bind 合并调用方 ctx 与控制器生命周期，并加上可选超时
func (c *Chat) bind(parent context.Context) (context.Context, context.CancelFunc) {
	var ctx context.Context
	var cancel context.CancelFunc
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, c.timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}
	stop := context.AfterFunc(c.life, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Close 取消所有进行中的交换
func (c *Chat) Close() { c.cancel() }
