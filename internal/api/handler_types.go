package api

import (
	"sync"

	"github.com/benjihealth/sanctuary/internal/agent"
	"github.com/benjihealth/sanctuary/internal/backend"
	"github.com/benjihealth/sanctuary/internal/config"
	"github.com/benjihealth/sanctuary/internal/db"
	"github.com/benjihealth/sanctuary/internal/services"
	"github.com/benjihealth/sanctuary/internal/session"
)

const apiKeyStorageKey = "anthropic_api_key"

// Handler serves the local JSON API the UI talks to. One user is active at a
// time; login and logout swap the per-user state as a unit.
type Handler struct {
	cfg      config.Config
	kv       services.KeyValue
	repos    *db.Repositories
	backend  *backend.Client
	agent    *agent.Agent
	sessions *session.Manager
	checkIns *services.CheckInService

	mu    sync.Mutex
	state *userState
}

// userState is everything scoped to the active user.
type userState struct {
	userID      string
	chatStore   *services.ChatSessionStore
	chat        *services.ChatService
	flowLog     *services.FlowLogService
	medications *services.MedicationService
	reminder    *services.FlowReminder
}

func NewHandler(cfg config.Config, kv services.KeyValue, repos *db.Repositories, client *backend.Client, sessions *session.Manager) *Handler {
	handler := &Handler{
		cfg:      cfg,
		kv:       kv,
		repos:    repos,
		backend:  client,
		sessions: sessions,
		checkIns: services.NewCheckInService(kv),
	}
	handler.agent = agent.New(handler.apiKey, cfg.AnthropicModel)
	handler.state = handler.buildUserState(sessions.UserIDOrGuest())
	return handler
}

// apiKey prefers the key saved from settings over the configured one.
func (handler *Handler) apiKey() string {
	if key, found, err := handler.kv.Get(apiKeyStorageKey); err == nil && found && key != "" {
		return key
	}
	return handler.cfg.AnthropicAPIKey
}

func (handler *Handler) buildUserState(userID string) *userState {
	chatStore := services.NewChatSessionStore(handler.kv, userID)
	return &userState{
		userID:      userID,
		chatStore:   chatStore,
		chat:        services.NewChatService(chatStore, handler.backend, userID),
		flowLog:     services.NewFlowLogService(handler.repos.FlowRecords, handler.backend, userID),
		medications: services.NewMedicationService(handler.repos.Medications, handler.backend, handler.kv, userID),
		reminder:    services.NewFlowReminder(),
	}
}

func (handler *Handler) currentState() *userState {
	handler.mu.Lock()
	defer handler.mu.Unlock()
	return handler.state
}

func (handler *Handler) switchUser(userID string) *userState {
	handler.mu.Lock()
	defer handler.mu.Unlock()
	if handler.state != nil && handler.state.userID == userID {
		return handler.state
	}
	handler.state = handler.buildUserState(userID)
	return handler.state
}
