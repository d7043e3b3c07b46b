package model

import (
	"time"
)

// Role represents the author of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is one entry in an assistant conversation. It is not persisted.
type ChatMessage struct {
	ID              string    `json:"id"`
	Role            Role      `json:"role"`
	Text            string    `json:"text"`
	Timestamp       time.Time `json:"timestamp"`
	SuggestedRoomID *ID       `json:"suggestedRoomId,omitempty"`
}

// AskRequest is the request to ask the assistant for a room.
type AskRequest struct {
	Query string `json:"query"`
}

// AskResponse is the assistant reply to a query.
type AskResponse struct {
	Message    *ChatMessage `json:"message"`
	Superseded bool         `json:"superseded,omitempty"`
}

// ListChatMessagesResponse is the response for listing assistant history.
type ListChatMessagesResponse struct {
	Messages []ChatMessage `json:"messages"`
}

// Recommendation is the structured reply produced by the recommendation gateway.
type Recommendation struct {
	Text              string `json:"replyText"`
	RecommendedRoomID *ID    `json:"recommendedRoomId,omitempty"`
}
