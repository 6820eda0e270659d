package models

import "time"

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// ChatMessage 聊天记录，只追加不删除
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

func (m ChatMessage) GetID() string { return m.ID }

const (
	ChatGreeting     = "Hello! I'm your AI health assistant. How are you feeling today?"
	ChatEmptyReply   = "I'm sorry, I couldn't process that request."
	ChatFallbackText = "I'm sorry, there was an error connecting to the server. Please try again later."
)
