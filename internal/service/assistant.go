package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartroom/booking-platform/internal/model"
	"github.com/smartroom/booking-platform/pkg/logger"
)

const (
	// WelcomeText opens every assistant session.
	WelcomeText = `Hi! I'm the SmartRoom assistant. I can help you find the best meeting room. For example: "Find a room for 10 people tomorrow afternoon with a projector".`
	// ApologyText replaces the reply whenever the recommendation call fails.
	ApologyText = "Sorry, something went wrong while contacting the assistant. Please try again."

	maxQueryLength = 2000

	defaultSessionTTL  = 24 * time.Hour
	defaultMaxSessions = 10000
)

type chatSession struct {
	messages   []model.ChatMessage
	generation uint64
	lastSeen   time.Time
}

// AssistantService keeps one chat per session and forwards queries to a Recommender.
// Every query bumps the session generation; a reply that comes back after a newer query
// was issued is returned to its caller flagged as superseded and is not added to history.
type AssistantService struct {
	recommender Recommender
	rooms       RoomSource
	bookings    BookingSource
	logger      *logger.Logger
	now         func() time.Time

	mu          sync.Mutex
	sessions    map[string]*chatSession
	sessionTTL  time.Duration
	maxSessions int
}

// NewAssistantService creates a new assistant service.
func NewAssistantService(recommender Recommender, rooms RoomSource, bookings BookingSource, now func() time.Time, log *logger.Logger) *AssistantService {
	if now == nil {
		now = time.Now
	}
	return &AssistantService{
		recommender: recommender,
		rooms:       rooms,
		bookings:    bookings,
		logger:      log,
		now:         now,
		sessions:    make(map[string]*chatSession),
		sessionTTL:  defaultSessionTTL,
		maxSessions: defaultMaxSessions,
	}
}

// History returns the chat for a session, starting with the welcome message.
func (s *AssistantService) History(sessionID string) []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ChatMessage(nil), s.sessionLocked(sessionID).messages...)
}

// Ask records the user's query, asks the recommender once and records the reply. A failed
// recommendation is logged and answered with ApologyText; it is never returned as an error.
func (s *AssistantService) Ask(ctx context.Context, sessionID, query string) (*model.AskResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" || len(query) > maxQueryLength {
		v := &ValidationError{}
		v.add("query", "must be between 1 and 2000 characters")
		return nil, v
	}

	s.mu.Lock()
	session := s.sessionLocked(sessionID)
	session.generation++
	generation := session.generation
	session.messages = append(session.messages, model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      model.RoleUser,
		Text:      query,
		Timestamp: s.now(),
	})
	s.mu.Unlock()

	reply := model.ChatMessage{
		ID:   uuid.NewString(),
		Role: model.RoleModel,
	}

	rec, err := s.recommender.Recommend(ctx, query, s.rooms.List(""), s.bookings.List())
	if err != nil {
		s.logger.Error("recommendation failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		reply.Text = ApologyText
	} else {
		reply.Text = rec.Text
		reply.SuggestedRoomID = rec.RecommendedRoomID
	}
	reply.Timestamp = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if session.generation != generation {
		s.logger.Info("discarding superseded recommendation",
			zap.String("session_id", sessionID),
			zap.Uint64("generation", generation),
			zap.Uint64("latest", session.generation),
		)
		return &model.AskResponse{Message: &reply, Superseded: true}, nil
	}

	session.messages = append(session.messages, reply)
	return &model.AskResponse{Message: &reply}, nil
}

// sessionLocked returns the session for sessionID, creating it if needed. Creating a
// session first drops sessions idle longer than sessionTTL and then, while the map is
// still full, the least recently used one.
func (s *AssistantService) sessionLocked(sessionID string) *chatSession {
	now := s.now()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.evictLocked(now)
		session = &chatSession{
			messages: []model.ChatMessage{{
				ID:        "welcome",
				Role:      model.RoleModel,
				Text:      WelcomeText,
				Timestamp: now,
			}},
		}
		s.sessions[sessionID] = session
	}
	session.lastSeen = now
	return session
}

func (s *AssistantService) evictLocked(now time.Time) {
	for id, session := range s.sessions {
		if now.Sub(session.lastSeen) > s.sessionTTL {
			delete(s.sessions, id)
		}
	}

	for len(s.sessions) >= s.maxSessions && len(s.sessions) > 0 {
		var oldestID string
		var oldest time.Time
		for id, session := range s.sessions {
			if oldestID == "" || session.lastSeen.Before(oldest) {
				oldestID, oldest = id, session.lastSeen
			}
		}
		delete(s.sessions, oldestID)
		s.logger.Debug("evicted assistant session", zap.String("session_id", oldestID))
	}
}
