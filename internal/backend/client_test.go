package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benjihealth/sanctuary/internal/models"
)

func TestChatReturnsReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			UserInput string `json:"user_input"`
			UserID    string `json:"user_id"`
			History   []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"history"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.UserInput != "hello" || body.UserID != "user-1" || len(body.History) != 1 {
			t.Errorf("unexpected body %+v", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "hi there"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	history := []models.ChatMessage{{Role: models.RoleUser, Content: "earlier"}}
	reply, err := client.Chat(context.Background(), "user-1", "hello", history)
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply != "hi there" {
		t.Errorf("reply = %q", reply)
	}
}

func TestErrorCarriesServerDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"detail": "invalid email"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), "bad", "creds")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity || apiErr.Detail != "invalid email" {
		t.Errorf("unexpected error %+v", apiErr)
	}
}

func TestUpdateProfileInfoFallsBackToCreate(t *testing.T) {
	var methods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodPatch {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.UpdateProfileInfo(context.Background(), "user-1", map[string]any{"name": "Ada"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(methods) != 2 || methods[0] != http.MethodPatch || methods[1] != http.MethodPost {
		t.Errorf("expected PATCH then POST, got %v", methods)
	}
}

func TestGetMenstrualReportsMissingRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, found, err := client.GetMenstrual(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get menstrual: %v", err)
	}
	if found {
		t.Error("404 should report the record as missing")
	}
}

func TestGetMenstrualDecodesEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"entries": map[string]any{"2024-03-01": map[string]any{"flow": "heavy"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	entries, found, err := client.GetMenstrual(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get menstrual: %v", err)
	}
	if !found {
		t.Fatal("expected a record")
	}
	if entries["2024-03-01"].Flow != models.FlowHeavy {
		t.Errorf("unexpected entries %+v", entries)
	}
}

func TestGetMedicationScheduleDefaultsOn404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("use_ai") != "true" {
			t.Error("expected use_ai=true query parameter")
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	schedule, err := client.GetMedicationSchedule(context.Background(), "user-1", true)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if schedule.TimeSlots.Morning == nil || len(schedule.Warnings) != 0 {
		t.Errorf("expected the empty schedule shape, got %+v", schedule)
	}
}

func TestGetGoalsDefaultsOn404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	goals, err := client.GetGoals(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("goals: %v", err)
	}
	if goals.Accepted == nil || goals.Generated == nil {
		t.Error("404 should map to empty goal sets")
	}
}
