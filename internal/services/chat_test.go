package services

import (
	"context"
	"errors"
	"testing"

	"github.com/benjihealth/sanctuary/internal/models"
)

type fakeChatBackend struct {
	reply   string
	err     error
	history []models.ChatMessage
}

func (backend *fakeChatBackend) Chat(ctx context.Context, userID string, input string, history []models.ChatMessage) (string, error) {
	backend.history = history
	return backend.reply, backend.err
}

func TestChatSendRecordsBothSides(t *testing.T) {
	store := NewChatSessionStore(newMemoryKV(), "user-1")
	backend := &fakeChatBackend{reply: "Take it easy today."}
	service := NewChatService(store, backend, "user-1")

	reply, err := service.Send(context.Background(), "How should I train?")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if reply != "Take it easy today." {
		t.Errorf("reply = %q", reply)
	}

	messages := store.ActiveSession().Messages
	if len(messages) != 2 {
		t.Fatalf("expected 2 recorded messages, got %d", len(messages))
	}
	if messages[0].Role != models.RoleUser || messages[1].Role != models.RoleAssistant {
		t.Errorf("unexpected roles %q, %q", messages[0].Role, messages[1].Role)
	}
	if len(backend.history) != 0 {
		t.Errorf("first turn should send empty history, got %d messages", len(backend.history))
	}
}

func TestChatSendPassesPriorHistory(t *testing.T) {
	store := NewChatSessionStore(newMemoryKV(), "user-1")
	backend := &fakeChatBackend{reply: "Sure."}
	service := NewChatService(store, backend, "user-1")

	if _, err := service.Send(context.Background(), "first"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := service.Send(context.Background(), "second"); err != nil {
		t.Fatalf("send: %v", err)
	}

	if len(backend.history) != 2 {
		t.Fatalf("expected 2 history messages on second turn, got %d", len(backend.history))
	}
	if backend.history[0].Content != "first" || backend.history[1].Content != "Sure." {
		t.Errorf("unexpected history %+v", backend.history)
	}
}

func TestChatSendBackendFailureKeepsUserMessage(t *testing.T) {
	store := NewChatSessionStore(newMemoryKV(), "user-1")
	backend := &fakeChatBackend{err: errors.New("connection refused")}
	service := NewChatService(store, backend, "user-1")

	if _, err := service.Send(context.Background(), "hello"); !errors.Is(err, ErrChatUnavailable) {
		t.Fatalf("got %v, want ErrChatUnavailable", err)
	}

	messages := store.ActiveSession().Messages
	if len(messages) != 1 || messages[0].Role != models.RoleUser {
		t.Errorf("user message should survive a failed turn, got %+v", messages)
	}
}

func TestChatSendRejectsBlankInput(t *testing.T) {
	service := NewChatService(NewChatSessionStore(newMemoryKV(), "user-1"), &fakeChatBackend{}, "user-1")

	if _, err := service.Send(context.Background(), "   "); !errors.Is(err, ErrEmptyChatMessage) {
		t.Errorf("got %v, want ErrEmptyChatMessage", err)
	}
}
