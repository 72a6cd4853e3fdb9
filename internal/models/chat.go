package models

// Message roles accepted on the wire.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// RequestMessage is a ChatMessage as it arrives on the wire. Content is a
// pointer so a missing field can be told apart from an empty string.
type RequestMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Messages []RequestMessage `json:"messages"`
	UserID   string           `json:"user_id,omitempty"`
	Context  map[string]any   `json:"context,omitempty"`
}

// ChatResponse carries the single assistant reply.
type ChatResponse struct {
	Message ChatMessage `json:"message"`
}

// API Error response
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
