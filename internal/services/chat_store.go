package services

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/benjihealth/sanctuary/internal/models"
	"github.com/benjihealth/sanctuary/internal/security"
)

const chatHistoryKeyPrefix = "benji_chat_history_"

// Length the sidebar summary is cut to before the ellipsis.
const summaryLimit = 50

// KeyValue is the slice of the local state store the services need.
type KeyValue interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Delete(key string) error
	List(prefix string) ([]string, error)
}

// HistoryEntry is one row of the rendered session list.
type HistoryEntry struct {
	SessionID string    `json:"sessionId"`
	Summary   string    `json:"summary"`
	Timestamp time.Time `json:"ts"`
}

// ChatSessionStore holds the user's conversation history grouped into
// sessions and persists it under one key per user. Persistence is
// best-effort: reads that fail parse as "no history", writes that fail are
// dropped silently.
type ChatSessionStore struct {
	mu       sync.Mutex
	kv       KeyValue
	userID   string
	sessions []*models.ChatSession
	active   *models.ChatSession
	running  []models.ChatMessage
	now      func() time.Time
}

// NewChatSessionStore loads any saved history for the user and starts a
// fresh active session. An empty userID stores under the guest key.
func NewChatSessionStore(kv KeyValue, userID string) *ChatSessionStore {
	store := &ChatSessionStore{
		kv:     kv,
		userID: userID,
		now:    time.Now,
	}
	store.sessions = store.loadSavedHistory()
	store.active = store.newSession()
	return store
}

func (store *ChatSessionStore) storageKey() string {
	if store.userID == "" {
		return chatHistoryKeyPrefix + "guest"
	}
	return chatHistoryKeyPrefix + store.userID
}

func (store *ChatSessionStore) newSession() *models.ChatSession {
	return &models.ChatSession{
		ID:        security.NewID("chat"),
		Messages:  []models.ChatMessage{},
		Timestamp: store.now(),
	}
}

// NewSession allocates a fresh, unstored session without side effects.
func (store *ChatSessionStore) NewSession() *models.ChatSession {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.newSession()
}

// persistedSession is the stored shape; Stored is implied by presence.
type persistedSession struct {
	ID       string               `json:"id"`
	Summary  string               `json:"summary"`
	Messages []models.ChatMessage `json:"messages"`
	TS       time.Time            `json:"ts"`
}

// loadSavedHistory reads the persisted session list. The modern shape is an
// array of sessions; the legacy shape is a flat list of role/content
// messages, detected by elements missing a "messages" field, and migrated
// into a single synthetic session. Malformed values read as no history.
func (store *ChatSessionStore) loadSavedHistory() []*models.ChatSession {
	raw, found, err := store.kv.Get(store.storageKey())
	if err != nil || !found {
		return nil
	}

	var probe []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil
	}

	legacy := false
	for _, element := range probe {
		if _, ok := element["messages"]; !ok {
			legacy = true
			break
		}
	}
	if legacy {
		return store.migrateLegacyHistory(raw)
	}

	var persisted []persistedSession
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		return nil
	}

	sessions := make([]*models.ChatSession, 0, len(persisted))
	for _, entry := range persisted {
		session := &models.ChatSession{
			ID:        entry.ID,
			Summary:   entry.Summary,
			Messages:  entry.Messages,
			Timestamp: entry.TS,
			Stored:    true,
		}
		if session.Messages == nil {
			session.Messages = []models.ChatMessage{}
		}
		if session.Timestamp.IsZero() {
			session.Timestamp = store.now()
		}
		sessions = append(sessions, session)
	}
	return sessions
}

func (store *ChatSessionStore) migrateLegacyHistory(raw string) []*models.ChatSession {
	var messages []models.ChatMessage
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil
	}
	if len(messages) == 0 {
		return nil
	}

	summary := ""
	for _, message := range messages {
		if message.Role == models.RoleUser {
			summary = message.Content
			break
		}
	}

	timestamp := messages[len(messages)-1].Timestamp
	if timestamp.IsZero() {
		timestamp = store.now()
	}

	return []*models.ChatSession{{
		ID:        security.NewID("chat"),
		Summary:   summary,
		Messages:  messages,
		Timestamp: timestamp,
		Stored:    true,
	}}
}

// RecordMessage normalizes the sender, appends the message to the running
// conversation and the active session, and persists the session list. The
// session is inserted at the front of the list on its first message; the
// summary is fixed to the first user message.
func (store *ChatSessionStore) RecordMessage(sender string, content string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	message := models.ChatMessage{
		Role:      models.NormalizeRole(sender),
		Content:   content,
		Timestamp: store.now(),
	}

	store.running = append(store.running, message)
	store.active.Messages = append(store.active.Messages, message)
	store.active.Timestamp = message.Timestamp

	if message.Role == models.RoleUser && store.active.Summary == "" {
		store.active.Summary = content
	}

	if !store.active.Stored {
		store.sessions = append([]*models.ChatSession{store.active}, store.sessions...)
		store.active.Stored = true
	}

	store.persist()
}

// persist writes the full session list; failures are intentionally dropped.
func (store *ChatSessionStore) persist() {
	persisted := make([]persistedSession, 0, len(store.sessions))
	for _, session := range store.sessions {
		persisted = append(persisted, persistedSession{
			ID:       session.ID,
			Summary:  session.Summary,
			Messages: session.Messages,
			TS:       session.Timestamp,
		})
	}

	data, err := json.Marshal(persisted)
	if err != nil {
		return
	}
	_ = store.kv.Set(store.storageKey(), string(data))
}

// HistoryList returns the session list sorted newest-first, summaries
// truncated for display.
func (store *ChatSessionStore) HistoryList() []HistoryEntry {
	store.mu.Lock()
	defer store.mu.Unlock()

	sorted := make([]*models.ChatSession, len(store.sessions))
	copy(sorted, store.sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	entries := make([]HistoryEntry, 0, len(sorted))
	for _, session := range sorted {
		summary := session.Summary
		if summary == "" {
			for _, message := range session.Messages {
				if message.Role == models.RoleUser {
					summary = message.Content
					break
				}
			}
		}
		entries = append(entries, HistoryEntry{
			SessionID: session.ID,
			Summary:   truncateSummary(summary),
			Timestamp: session.Timestamp,
		})
	}
	return entries
}

func truncateSummary(summary string) string {
	runes := []rune(summary)
	if len(runes) <= summaryLimit {
		return summary
	}
	return string(runes[:summaryLimit]) + "…"
}

// StartFresh discards the running conversation and activates a new session.
// Previously persisted sessions are untouched.
func (store *ChatSessionStore) StartFresh() {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.running = nil
	store.active = store.newSession()
}

// OpenSession makes a stored session the active one and returns its
// messages. Unknown ids are a no-op.
func (store *ChatSessionStore) OpenSession(sessionID string) ([]models.ChatMessage, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, session := range store.sessions {
		if session.ID != sessionID {
			continue
		}
		store.active = session
		store.running = make([]models.ChatMessage, len(session.Messages))
		copy(store.running, session.Messages)
		return store.running, true
	}
	return nil, false
}

// Running returns a copy of the current conversation.
func (store *ChatSessionStore) Running() []models.ChatMessage {
	store.mu.Lock()
	defer store.mu.Unlock()
	out := make([]models.ChatMessage, len(store.running))
	copy(out, store.running)
	return out
}

// ClearHistory deletes all sessions, removes the persisted value and starts
// a fresh session.
func (store *ChatSessionStore) ClearHistory() {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.sessions = nil
	store.running = nil
	store.active = store.newSession()
	_ = store.kv.Delete(store.storageKey())
}

// ActiveSession returns the session new messages append to.
func (store *ChatSessionStore) ActiveSession() *models.ChatSession {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.active
}
