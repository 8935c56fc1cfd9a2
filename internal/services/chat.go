package services

import (
	"context"
	"errors"
	"strings"

	"github.com/benjihealth/sanctuary/internal/models"
)

// ChatUnavailableMessage is shown in place of a reply when the backend
// cannot be reached.
const ChatUnavailableMessage = "I'm having trouble connecting right now. Please check if the server is running and try again."

var (
	ErrEmptyChatMessage = errors.New("chat message is empty")
	ErrChatUnavailable  = errors.New("chat backend unavailable")
)

// ChatBackend produces assistant replies for a message plus the running
// conversation.
type ChatBackend interface {
	Chat(ctx context.Context, userID string, input string, history []models.ChatMessage) (string, error)
}

// ChatService drives one conversation turn: record the user's message, ask
// the backend, record the reply. The store keeps its copy of the user
// message even when the backend call fails, matching what the user saw.
type ChatService struct {
	store   *ChatSessionStore
	backend ChatBackend
	userID  string
}

func NewChatService(store *ChatSessionStore, backend ChatBackend, userID string) *ChatService {
	return &ChatService{store: store, backend: backend, userID: userID}
}

// Send runs one conversation turn and returns the assistant reply.
func (service *ChatService) Send(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyChatMessage
	}

	history := service.store.Running()
	service.store.RecordMessage("You", text)

	if service.backend == nil {
		return "", ErrChatUnavailable
	}
	reply, err := service.backend.Chat(ctx, service.userID, text, history)
	if err != nil || reply == "" {
		return "", ErrChatUnavailable
	}

	service.store.RecordMessage("Benji", reply)
	return reply, nil
}

// Store exposes the session store for history operations.
func (service *ChatService) Store() *ChatSessionStore {
	return service.store
}
