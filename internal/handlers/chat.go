package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"codecoach-backend/internal/models"
)

// agentResponder is the slice of the agent service the handler depends on.
type agentResponder interface {
	GetResponse(ctx context.Context, messages []models.ChatMessage, userID string, chatContext map[string]any) string
}

type ChatHandler struct {
	agent agentResponder
}

func NewChatHandler(agent agentResponder) *ChatHandler {
	return &ChatHandler{agent: agent}
}

// Chat handles POST /api/v1/chat. The agent service absorbs provider
// failures, so a well-formed request always gets a 200 with one assistant
// message.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	msgs := make([]models.ChatMessage, len(req.Messages))
	for i, msg := range req.Messages {
		switch msg.Role {
		case models.RoleSystem, models.RoleUser, models.RoleAssistant:
		default:
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Message role must be system, user or assistant", r))
			return
		}
		if msg.Content == nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Message content is required", r))
			return
		}
		msgs[i] = models.ChatMessage{Role: msg.Role, Content: *msg.Content}
	}

	reply := h.agent.GetResponse(r.Context(), msgs, req.UserID, req.Context)

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Message: models.ChatMessage{Role: models.RoleAssistant, Content: reply},
	})
}
