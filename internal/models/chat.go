package models

import (
	"strings"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn in a conversation.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"ts"`
}

// ChatSession groups an ordered sequence of messages into one conversation.
// Summary is set once to the first user message and never changes.
// Timestamp tracks the most recently appended message and drives the
// newest-first ordering of the history list.
type ChatSession struct {
	ID        string        `json:"id"`
	Summary   string        `json:"summary"`
	Messages  []ChatMessage `json:"messages"`
	Timestamp time.Time     `json:"ts"`
	Stored    bool          `json:"-"`
}

// NormalizeRole maps display senders ("You", "Benji") onto wire roles.
func NormalizeRole(sender string) string {
	switch strings.ToLower(strings.TrimSpace(sender)) {
	case "you", RoleUser:
		return RoleUser
	default:
		return RoleAssistant
	}
}
