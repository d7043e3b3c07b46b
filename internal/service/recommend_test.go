package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartroom/booking-platform/internal/llm"
	"github.com/smartroom/booking-platform/internal/model"
)

type capturingClient struct {
	llm.MockClient
	requests []*llm.CompletionRequest
}

func (c *capturingClient) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	c.requests = append(c.requests, req)
	return c.MockClient.Complete(ctx, req)
}

func TestParseRecommendation(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantText string
		wantRoom *model.ID
		wantErr  bool
	}{
		{
			name:     "with room",
			content:  `{"replyText":"Galaxy fits","recommendedRoomId":"1"}`,
			wantText: "Galaxy fits",
			wantRoom: idPtr("1"),
		},
		{
			name:     "numeric room id",
			content:  `{"replyText":"Galaxy fits","recommendedRoomId":1}`,
			wantText: "Galaxy fits",
			wantRoom: idPtr("1"),
		},
		{
			name:     "null room",
			content:  `{"replyText":"Nothing free","recommendedRoomId":null}`,
			wantText: "Nothing free",
		},
		{
			name:     "empty room",
			content:  `{"replyText":"Tell me more","recommendedRoomId":""}`,
			wantText: "Tell me more",
		},
		{
			name:     "fenced",
			content:  "```json\n{\"replyText\":\"ok\"}\n```",
			wantText: "ok",
		},
		{name: "not json", content: "sure, room 1", wantErr: true},
		{name: "missing text", content: `{"recommendedRoomId":"1"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseRecommendation(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, rec.Text)
			assert.Equal(t, tt.wantRoom, rec.RecommendedRoomID)
		})
	}
}

func TestRecommendBuildsPrompt(t *testing.T) {
	client := &capturingClient{MockClient: llm.MockClient{Reply: `{"replyText":"Try Galaxy","recommendedRoomId":"1"}`}}
	gw := NewRecommendationGateway(client, "test-model", time.Second, time.UTC, func() time.Time { return refNow })

	rooms := testRooms()
	rooms[0].Equipment = []model.Equipment{{ID: "p", Name: "Projector"}}

	rec, err := gw.Recommend(context.Background(), "room for 10 with projector", rooms, SeedBookings(refNow, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "Try Galaxy", rec.Text)
	assert.Equal(t, idPtr("1"), rec.RecommendedRoomID)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, "test-model", req.Model)
	assert.True(t, req.JSONMode)
	require.Len(t, req.Messages, 1)

	prompt := req.Messages[0].Content
	assert.Contains(t, prompt, "10/03/2026 08:00")
	assert.Contains(t, prompt, `"Projector"`)
	assert.Contains(t, prompt, "10/03/2026 14:00")
	assert.True(t, strings.HasSuffix(prompt, `"room for 10 with projector"`))
}

func TestRecommendDefaultsToProviderModel(t *testing.T) {
	client := &capturingClient{MockClient: llm.MockClient{Reply: `{"replyText":"ok"}`}}
	gw := NewRecommendationGateway(client, "", time.Second, time.UTC, nil)

	_, err := gw.Recommend(context.Background(), "hi", nil, nil)
	require.NoError(t, err)
	require.Len(t, client.requests, 1)
	assert.Equal(t, "mock", client.requests[0].Model)
}

func TestRecommendErrors(t *testing.T) {
	t.Run("no client", func(t *testing.T) {
		gw := NewRecommendationGateway(nil, "", time.Second, time.UTC, nil)
		_, err := gw.Recommend(context.Background(), "hi", nil, nil)

		var recErr *RecommendationError
		require.True(t, errors.As(err, &recErr))
		assert.Equal(t, "request", recErr.Stage)
	})

	t.Run("provider failure", func(t *testing.T) {
		client := &capturingClient{MockClient: llm.MockClient{Err: errors.New("quota exceeded")}}
		gw := NewRecommendationGateway(client, "", time.Second, time.UTC, nil)
		_, err := gw.Recommend(context.Background(), "hi", nil, nil)

		var recErr *RecommendationError
		require.True(t, errors.As(err, &recErr))
		assert.Equal(t, "request", recErr.Stage)
		assert.Len(t, client.requests, 1, "must not retry")
	})

	t.Run("unparseable reply", func(t *testing.T) {
		client := &capturingClient{MockClient: llm.MockClient{Reply: "I think Galaxy"}}
		gw := NewRecommendationGateway(client, "", time.Second, time.UTC, nil)
		_, err := gw.Recommend(context.Background(), "hi", nil, nil)

		var recErr *RecommendationError
		require.True(t, errors.As(err, &recErr))
		assert.Equal(t, "parse", recErr.Stage)
	})
}

func idPtr(id model.ID) *model.ID {
	return &id
}
