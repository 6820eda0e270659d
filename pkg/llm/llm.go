package llm

import (
	"context"
	"errors"
)

// Assistant answers one chat message. Implementations must honour ctx
// cancellation and must not retry.
type Assistant interface {
	Reply(ctx context.Context, text string) (string, error)
}

// EmptyReply 助手返回空字符串时展示的文案
const EmptyReply = "I'm sorry, I couldn't process that request."

var ErrUnavailable = errors.New("llm: assistant unavailable")

// AssistantFunc adapts a plain function, handy for tests and stubs.
type AssistantFunc func(ctx context.Context, text string) (string, error)

func (f AssistantFunc) Reply(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

func orEmpty(reply string) string {
	if reply == "" {
		return EmptyReply
	}
	return reply
}
