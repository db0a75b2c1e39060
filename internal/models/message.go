package models

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who produced a message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Valid reports whether s is a known sender
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderBot
}

// Message is a single chat line. It lives only as long as the UI showing it.
type Message struct {
	ID        string
	Text      string
	Sender    Sender
	CreatedAt time.Time
}

// NewMessage creates a message with a fresh ID
func NewMessage(text string, sender Sender) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		CreatedAt: time.Now(),
	}
}

// IsBot reports whether the message came from the bot
func (m Message) IsBot() bool {
	return m.Sender == SenderBot
}
