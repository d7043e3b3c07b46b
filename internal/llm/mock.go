package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// MockClient is an offline Client. It answers with Reply when set, otherwise with a JSON
// reply echoing the last user message.
type MockClient struct {
	Reply string
	Err   error
}

// Ensure MockClient implements Client.
var _ Client = (*MockClient)(nil)

// NewMockClient creates a new mock LLM client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Name returns the provider name.
func (m *MockClient) Name() string {
	return string(ProviderMock)
}

// Models returns available models.
func (m *MockClient) Models() []string {
	return []string{"mock"}
}

// Complete returns the canned reply.
func (m *MockClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}

	content := m.Reply
	if content == "" {
		content = m.echo(req)
	}

	return &CompletionResponse{
		Content:    content,
		Model:      "mock",
		TokensIn:   estimateTokens(req),
		TokensOut:  len(content) / 4,
		StopReason: "stop",
	}, nil
}

func (m *MockClient) echo(req *CompletionRequest) string {
	var last string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			last = req.Messages[i].Content
			break
		}
	}
	if idx := strings.LastIndex(last, "\n"); idx >= 0 {
		last = last[idx+1:]
	}

	data, _ := json.Marshal(map[string]string{
		"replyText": "[MOCK] " + strings.TrimSpace(last),
	})
	return string(data)
}

func estimateTokens(req *CompletionRequest) int {
	total := 0
	for _, msg := range req.Messages {
		total += len(msg.Content) / 4
	}
	return total
}
