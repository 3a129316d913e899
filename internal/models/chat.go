package models

import "time"

// ChatSender identifies who produced a chat message.
type ChatSender string

const (
	ChatSenderUser ChatSender = "user"
	ChatSenderBot  ChatSender = "bot"
)

// ChatMessageType distinguishes plain replies from ones carrying properties.
type ChatMessageType string

const (
	ChatMessageText       ChatMessageType = "text"
	ChatMessageProperties ChatMessageType = "properties"
	ChatMessageAction     ChatMessageType = "action"
)

// ChatMessage is one turn in an assistant conversation. Data carries the
// properties payload when Type is "properties".
type ChatMessage struct {
	ID        string          `json:"id"`
	Text      string          `json:"text"`
	Sender    ChatSender      `json:"sender"`
	Timestamp time.Time       `json:"timestamp"`
	Type      ChatMessageType `json:"type"`
	Data      []Property      `json:"data,omitempty"`
}
