package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/smartroom/booking-platform/internal/model"
	"github.com/smartroom/booking-platform/pkg/logger"
	"github.com/smartroom/booking-platform/pkg/metrics"
)

// RoomFetcher loads the room list from its source of truth.
type RoomFetcher interface {
	FetchRooms(ctx context.Context) ([]model.Room, error)
}

// RoomService holds the room directory. It is read-only for the rest of the service and
// only changes when Refresh succeeds.
type RoomService struct {
	fetcher RoomFetcher
	logger  *logger.Logger

	mu        sync.RWMutex
	rooms     []model.Room
	index     map[model.ID]int
	fetchedAt time.Time
}

// NewRoomService creates an empty room directory.
func NewRoomService(fetcher RoomFetcher, log *logger.Logger) *RoomService {
	return &RoomService{
		fetcher: fetcher,
		logger:  log,
		index:   make(map[model.ID]int),
	}
}

// Refresh reloads the directory. On failure the previous contents are kept, the error is
// logged and a *FetchError is returned.
func (s *RoomService) Refresh(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "RoomService.Refresh")
	defer span.End()

	rooms, err := s.fetcher.FetchRooms(ctx)
	if err != nil {
		metrics.RecordRoomFetch("error", 0)
		s.logger.Error("failed to fetch rooms", zap.Error(err))
		span.RecordError(err)
		return &FetchError{Err: err}
	}

	valid := make([]model.Room, 0, len(rooms))
	index := make(map[model.ID]int, len(rooms))
	for _, room := range rooms {
		if room.Capacity <= 0 {
			s.logger.Warn("dropping room with non-positive capacity",
				zap.String("room_id", room.ID.String()),
				zap.Int("capacity", room.Capacity),
			)
			continue
		}
		if _, dup := index[room.ID]; dup {
			s.logger.Warn("dropping duplicate room", zap.String("room_id", room.ID.String()))
			continue
		}
		index[room.ID] = len(valid)
		valid = append(valid, room)
	}

	s.mu.Lock()
	s.rooms = valid
	s.index = index
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	metrics.RecordRoomFetch("success", len(valid))
	s.logger.Info("room directory refreshed", zap.Int("rooms", len(valid)))

	return nil
}

// Run refreshes the directory every interval until ctx is done.
func (s *RoomService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Failures are logged by Refresh and the directory keeps its contents.
			_ = s.Refresh(ctx)
		}
	}
}

// List returns the rooms whose name contains query, case-insensitively, in directory order.
func (s *RoomService) List(query string) []model.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Room, 0, len(s.rooms))
	for i := range s.rooms {
		if query == "" || s.rooms[i].MatchesName(query) {
			out = append(out, s.rooms[i])
		}
	}
	return out
}

// Get looks a room up by id.
func (s *RoomService) Get(id model.ID) (model.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return model.Room{}, false
	}
	return s.rooms[i], true
}

// FetchedAt returns the time of the last successful refresh.
func (s *RoomService) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}
