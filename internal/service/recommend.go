package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smartroom/booking-platform/internal/llm"
	"github.com/smartroom/booking-platform/internal/model"
	"github.com/smartroom/booking-platform/pkg/metrics"
)

const promptTimeLayout = "02/01/2006 15:04"

// Recommender turns a free-text request into a room suggestion.
type Recommender interface {
	Recommend(ctx context.Context, query string, rooms []model.Room, bookings []model.Booking) (*model.Recommendation, error)
}

// RecommendationGateway asks an LLM for a room suggestion. It makes exactly one attempt per
// query and never retries. The returned room id is passed through without interpretation.
type RecommendationGateway struct {
	client  llm.Client
	model   string
	timeout time.Duration
	loc     *time.Location
	now     func() time.Time
}

// NewRecommendationGateway creates a gateway. client may be nil, in which case every call
// fails with a *RecommendationError. An empty modelName picks the provider's first model.
func NewRecommendationGateway(client llm.Client, modelName string, timeout time.Duration, loc *time.Location, now func() time.Time) *RecommendationGateway {
	if modelName == "" && client != nil {
		if models := client.Models(); len(models) > 0 {
			modelName = models[0]
		}
	}
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &RecommendationGateway{
		client:  client,
		model:   modelName,
		timeout: timeout,
		loc:     loc,
		now:     now,
	}
}

type promptRoom struct {
	ID        model.ID         `json:"id"`
	Name      string           `json:"name"`
	Capacity  int              `json:"capacity"`
	Equipment []string         `json:"equipment"`
	Status    model.RoomStatus `json:"status"`
}

type promptBooking struct {
	RoomID model.ID `json:"roomId"`
	Start  string   `json:"start"`
	End    string   `json:"end"`
	Title  string   `json:"title"`
}

// Recommend implements Recommender.
func (g *RecommendationGateway) Recommend(ctx context.Context, query string, rooms []model.Room, bookings []model.Booking) (*model.Recommendation, error) {
	ctx, span := tracer.Start(ctx, "RecommendationGateway.Recommend")
	defer span.End()

	if g.client == nil {
		return nil, &RecommendationError{Stage: "request", Err: errors.New("no LLM provider configured")}
	}

	prompt, err := g.buildPrompt(query, rooms, bookings)
	if err != nil {
		return nil, &RecommendationError{Stage: "prompt", Err: err}
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.client.Complete(ctx, &llm.CompletionRequest{
		Model:     g.model,
		Messages:  []llm.ChatMessage{{Role: "user", Content: prompt}},
		MaxTokens: 1024,
		JSONMode:  true,
	})
	if err != nil {
		metrics.RecordRecommendation(g.client.Name(), "request_error", time.Since(start).Seconds())
		span.RecordError(err)
		return nil, &RecommendationError{Stage: "request", Err: err}
	}
	metrics.RecordLLMTokens(resp.Model, resp.TokensIn, resp.TokensOut)

	rec, err := ParseRecommendation(resp.Content)
	if err != nil {
		metrics.RecordRecommendation(g.client.Name(), "parse_error", time.Since(start).Seconds())
		span.RecordError(err)
		return nil, &RecommendationError{Stage: "parse", Err: err}
	}

	metrics.RecordRecommendation(g.client.Name(), "success", time.Since(start).Seconds())
	return rec, nil
}

func (g *RecommendationGateway) buildPrompt(query string, rooms []model.Room, bookings []model.Booking) (string, error) {
	simpleRooms := make([]promptRoom, 0, len(rooms))
	for _, r := range rooms {
		equipment := make([]string, 0, len(r.Equipment))
		for _, e := range r.Equipment {
			equipment = append(equipment, e.Name)
		}
		simpleRooms = append(simpleRooms, promptRoom{
			ID:        r.ID,
			Name:      r.Name,
			Capacity:  r.Capacity,
			Equipment: equipment,
			Status:    r.Status,
		})
	}

	simpleBookings := make([]promptBooking, 0, len(bookings))
	for _, b := range bookings {
		simpleBookings = append(simpleBookings, promptBooking{
			RoomID: b.RoomID,
			Start:  b.StartTime.In(g.loc).Format(promptTimeLayout),
			End:    b.EndTime.In(g.loc).Format(promptTimeLayout),
			Title:  b.Title,
		})
	}

	roomsJSON, err := json.Marshal(simpleRooms)
	if err != nil {
		return "", err
	}
	bookingsJSON, err := json.Marshal(simpleBookings)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("You are the assistant of the SmartRoom meeting room booking system.\n")
	fmt.Fprintf(&sb, "Current time: %s.\n\n", g.now().In(g.loc).Format(promptTimeLayout))
	fmt.Fprintf(&sb, "Rooms:\n%s\n\n", roomsJSON)
	fmt.Fprintf(&sb, "Current bookings:\n%s\n\n", bookingsJSON)
	sb.WriteString("Analyse the request, check free slots and matching equipment, then answer.\n")
	sb.WriteString("If a suitable room exists, return its id. If none fits or the request is unclear, explain and ask for more detail.\n")
	sb.WriteString("Answer briefly and politely, in the language of the request.\n")
	sb.WriteString(`Reply with one JSON object only: {"replyText": string, "recommendedRoomId": string or null}.` + "\n\n")
	fmt.Fprintf(&sb, "User request: %q", query)

	return sb.String(), nil
}

// ParseRecommendation decodes a {replyText, recommendedRoomId} object. Markdown code fences
// around the object are tolerated; an empty replyText is an error.
func ParseRecommendation(content string) (*model.Recommendation, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}

	var rec model.Recommendation
	if err := json.Unmarshal([]byte(content), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode reply: %w", err)
	}
	if strings.TrimSpace(rec.Text) == "" {
		return nil, errors.New("reply has no replyText")
	}
	if rec.RecommendedRoomID != nil && *rec.RecommendedRoomID == "" {
		rec.RecommendedRoomID = nil
	}
	return &rec, nil
}
