package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/benjihealth/sanctuary/internal/models"
)

const requestTimeout = 15 * time.Second

// APIError is a non-2xx backend response, carrying the server-provided
// detail when one was present.
type APIError struct {
	StatusCode int
	Detail     string
}

func (err *APIError) Error() string {
	if err.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", err.StatusCode, err.Detail)
	}
	return fmt.Sprintf("backend returned %d", err.StatusCode)
}

// Client is the typed client for the companion backend. Every call carries a
// request timeout; the original made untimed calls and could hang forever on
// a stalled connection.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(requestTimeout).
			SetHeader("Content-Type", "application/json"),
	}
}

func (client *Client) request(ctx context.Context) *resty.Request {
	return client.http.R().SetContext(ctx)
}

// apiError extracts the {"detail": ...} payload FastAPI-style backends
// attach to error responses. Details that are not plain strings are kept
// as their JSON text.
func apiError(res *resty.Response) error {
	apiErr := &APIError{StatusCode: res.StatusCode()}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(res.Body(), &payload); err == nil && len(payload.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil {
			apiErr.Detail = detail
		} else {
			apiErr.Detail = string(payload.Detail)
		}
	}
	return apiErr
}

func decode(res *resty.Response, out any) error {
	if !res.IsSuccess() {
		return apiError(res)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(res.Body(), out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

// UserProfile is the account payload returned by the auth endpoints.
type UserProfile struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
}

func (client *Client) Login(ctx context.Context, email, password string) (UserProfile, error) {
	var profile UserProfile
	res, err := client.request(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		Post("/login")
	if err != nil {
		return UserProfile{}, err
	}
	return profile, decode(res, &profile)
}

func (client *Client) Signup(ctx context.Context, email, password, name string) (UserProfile, error) {
	var profile UserProfile
	res, err := client.request(ctx).
		SetBody(map[string]string{"email": email, "password": password, "name": name}).
		Post("/signup")
	if err != nil {
		return UserProfile{}, err
	}
	return profile, decode(res, &profile)
}

func (client *Client) GetUser(ctx context.Context, userID string) (UserProfile, error) {
	var profile UserProfile
	res, err := client.request(ctx).Get("/user/" + userID)
	if err != nil {
		return UserProfile{}, err
	}
	return profile, decode(res, &profile)
}

func (client *Client) GetProfileInfo(ctx context.Context, userID string) (map[string]any, error) {
	var info map[string]any
	res, err := client.request(ctx).Get("/profileinfo/" + userID)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() == http.StatusNotFound {
		return map[string]any{}, nil
	}
	return info, decode(res, &info)
}

// UpdateProfileInfo patches the profile; a 404 means the profile record does
// not exist yet, in which case it is created instead.
func (client *Client) UpdateProfileInfo(ctx context.Context, userID string, payload map[string]any) error {
	res, err := client.request(ctx).SetBody(payload).Patch("/profileinfo/" + userID)
	if err != nil {
		return err
	}
	if res.StatusCode() == http.StatusNotFound {
		res, err = client.request(ctx).SetBody(payload).Post("/profileinfo/" + userID)
		if err != nil {
			return err
		}
	}
	return decode(res, nil)
}

// Goals is the backend's goal sets for a user.
type Goals struct {
	Accepted  []json.RawMessage `json:"accepted"`
	Generated []json.RawMessage `json:"generated"`
}

func (client *Client) GetGoals(ctx context.Context, userID string) (Goals, error) {
	var goals Goals
	res, err := client.request(ctx).Get("/goals/" + userID)
	if err != nil {
		return Goals{}, err
	}
	if res.StatusCode() == http.StatusNotFound {
		return Goals{Accepted: []json.RawMessage{}, Generated: []json.RawMessage{}}, nil
	}
	return goals, decode(res, &goals)
}

func (client *Client) GenerateGoals(ctx context.Context, body any) (json.RawMessage, error) {
	var out json.RawMessage
	res, err := client.request(ctx).SetBody(body).Post("/goals")
	if err != nil {
		return nil, err
	}
	return out, decode(res, &out)
}

func (client *Client) AcceptGoals(ctx context.Context, userID string, goals any) error {
	res, err := client.request(ctx).
		SetBody(map[string]any{"goals": goals}).
		Post("/goals/" + userID + "/accepted")
	if err != nil {
		return err
	}
	return decode(res, nil)
}

func (client *Client) GetCheckins(ctx context.Context, userID string) ([]json.RawMessage, error) {
	var checkins []json.RawMessage
	res, err := client.request(ctx).Get("/checkins/" + userID)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() == http.StatusNotFound {
		return []json.RawMessage{}, nil
	}
	return checkins, decode(res, &checkins)
}

func (client *Client) PostCheckin(ctx context.Context, body any) (json.RawMessage, error) {
	var out json.RawMessage
	res, err := client.request(ctx).SetBody(body).Post("/checkins")
	if err != nil {
		return nil, err
	}
	return out, decode(res, &out)
}

func (client *Client) CheckinSense(ctx context.Context, body any) (json.RawMessage, error) {
	var out json.RawMessage
	res, err := client.request(ctx).SetBody(body).Post("/checkin-sense")
	if err != nil {
		return nil, err
	}
	return out, decode(res, &out)
}

func (client *Client) RelevantQuestions(ctx context.Context, body any) (json.RawMessage, error) {
	var out json.RawMessage
	res, err := client.request(ctx).SetBody(body).Post("/relevant-questions")
	if err != nil {
		return nil, err
	}
	return out, decode(res, &out)
}

func (client *Client) Run(ctx context.Context, body any) (json.RawMessage, error) {
	var out json.RawMessage
	res, err := client.request(ctx).SetBody(body).Post("/run")
	if err != nil {
		return nil, err
	}
	return out, decode(res, &out)
}

func (client *Client) Upcoming(ctx context.Context, body any) (json.RawMessage, error) {
	var out json.RawMessage
	res, err := client.request(ctx).SetBody(body).Post("/upcoming")
	if err != nil {
		return nil, err
	}
	return out, decode(res, &out)
}

type chatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat sends one conversation turn with the running history and returns the
// assistant reply.
func (client *Client) Chat(ctx context.Context, userID string, input string, history []models.ChatMessage) (string, error) {
	turns := make([]chatTurn, len(history))
	for i, message := range history {
		turns[i] = chatTurn{Role: message.Role, Content: message.Content}
	}

	var reply struct {
		Response string `json:"response"`
	}
	res, err := client.request(ctx).
		SetBody(map[string]any{
			"user_input": input,
			"user_id":    userID,
			"history":    turns,
		}).
		Post("/chat")
	if err != nil {
		return "", err
	}
	if err := decode(res, &reply); err != nil {
		return "", err
	}
	return reply.Response, nil
}

func (client *Client) ChatHistory(ctx context.Context, userID string) ([]json.RawMessage, error) {
	var history []json.RawMessage
	res, err := client.request(ctx).Get("/chat-history/" + userID)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() == http.StatusNotFound {
		return []json.RawMessage{}, nil
	}
	return history, decode(res, &history)
}

func (client *Client) HealthHistory(ctx context.Context, userID string, limit int) ([]json.RawMessage, error) {
	var history []json.RawMessage
	res, err := client.request(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		Get("/health-history/" + userID)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() == http.StatusNotFound {
		return []json.RawMessage{}, nil
	}
	return history, decode(res, &history)
}

func (client *Client) GetMedications(ctx context.Context, userID string) ([]models.Medication, error) {
	var payload struct {
		Medications []models.Medication `json:"medications"`
	}
	res, err := client.request(ctx).Get("/medications/" + userID)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() == http.StatusNotFound {
		return []models.Medication{}, nil
	}
	if err := decode(res, &payload); err != nil {
		return nil, err
	}
	return payload.Medications, nil
}

func (client *Client) PutMedications(ctx context.Context, userID string, medications []models.Medication) error {
	res, err := client.request(ctx).
		SetBody(map[string]any{"medications": medications}).
		Put("/medications/" + userID)
	if err != nil {
		return err
	}
	return decode(res, nil)
}

func (client *Client) GetCompliance(ctx context.Context, userID string, date string) (json.RawMessage, error) {
	var out json.RawMessage
	res, err := client.request(ctx).
		SetQueryParam("date", date).
		Get("/compliance/" + userID)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() == http.StatusNotFound {
		return json.RawMessage("{}"), nil
	}
	return out, decode(res, &out)
}

func (client *Client) PostCompliance(ctx context.Context, body any) error {
	res, err := client.request(ctx).SetBody(body).Post("/compliance")
	if err != nil {
		return err
	}
	return decode(res, nil)
}

// GetMenstrual loads the flow log. The boolean is false when the backend has
// no record for this user yet.
func (client *Client) GetMenstrual(ctx context.Context, userID string) (models.FlowLog, bool, error) {
	var payload struct {
		Entries models.FlowLog `json:"entries"`
	}
	res, err := client.request(ctx).Get("/menstrual/" + userID)
	if err != nil {
		return nil, false, err
	}
	if res.StatusCode() == http.StatusNotFound {
		return nil, false, nil
	}
	if err := decode(res, &payload); err != nil {
		return nil, false, err
	}
	if payload.Entries == nil {
		payload.Entries = models.FlowLog{}
	}
	return payload.Entries, true, nil
}

func (client *Client) PutMenstrual(ctx context.Context, userID string, entries models.FlowLog) error {
	res, err := client.request(ctx).
		SetBody(map[string]any{"entries": entries}).
		Put("/menstrual/" + userID)
	if err != nil {
		return err
	}
	return decode(res, nil)
}

// CycleRecommendations is the backend's personalized cycle guidance.
type CycleRecommendations struct {
	UserID               string            `json:"user_id"`
	CurrentPhase         string            `json:"current_phase"`
	CycleDay             int               `json:"cycle_day"`
	PredictedPeriodOnset string            `json:"predicted_period_onset"`
	Recommendations      []json.RawMessage `json:"recommendations"`
	PersonalizationNotes string            `json:"personalization_notes"`
}

func (client *Client) GetCycleRecommendations(ctx context.Context, userID string) (CycleRecommendations, error) {
	var recs CycleRecommendations
	res, err := client.request(ctx).Get("/menstrual-recommendations/" + userID)
	if err != nil {
		return CycleRecommendations{}, err
	}
	if res.StatusCode() == http.StatusNotFound {
		return CycleRecommendations{UserID: userID, Recommendations: []json.RawMessage{}}, nil
	}
	return recs, decode(res, &recs)
}

// GetMedicationSchedule fetches the schedule, optionally AI-personalized.
// A 404 maps to the empty schedule shape.
func (client *Client) GetMedicationSchedule(ctx context.Context, userID string, useAI bool) (models.MedicationSchedule, error) {
	req := client.request(ctx)
	if useAI {
		req.SetQueryParam("use_ai", "true")
	}
	res, err := req.Get("/medication-schedule/" + userID)
	if err != nil {
		return models.MedicationSchedule{}, err
	}
	if res.StatusCode() == http.StatusNotFound {
		return models.EmptyMedicationSchedule(), nil
	}
	var schedule models.MedicationSchedule
	return schedule, decode(res, &schedule)
}
