package services

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	log "github.com/sirupsen/logrus"

	"codecoach-backend/internal/models"
)

// fallbackReply is what students see whenever the provider call fails.
// Raw provider errors never leave this package.
const fallbackReply = "I'm having trouble responding right now. Please try again in a moment."

// chatCompleter is the slice of the OpenAI client the agent actually uses,
// so tests can swap in a fake.
type chatCompleter interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// AgentService owns all interaction with the OpenAI API. Model and
// generation settings are fixed at construction, not per request.
type AgentService struct {
	completions chatCompleter
	model       string
	temperature float64
	maxTokens   int
	maxTurns    int
	maxChars    int
}

func NewAgentService(apiKey, model string, temperature float64, maxTokens, maxTurns, maxContentChars int) *AgentService {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &AgentService{
		completions: &client.Chat.Completions,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		maxTurns:    maxTurns,
		maxChars:    maxContentChars,
	}
}

// GetResponse shapes the raw conversation, makes a single completion call
// and returns the assistant text. The frontend sends only raw conversation
// turns; tutoring style, guardrails and context shaping live here.
func (s *AgentService) GetResponse(ctx context.Context, messages []models.ChatMessage, userID string, chatContext map[string]any) string {
	if userID != "" {
		log.WithField("user_id", userID).Info("handling chat request")
	}

	msgs := clipMessages(messages, s.maxTurns, s.maxChars)
	msgs = ensureSystem(msgs, chatContext)

	resp, err := s.completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       s.model,
		Messages:    toOpenAIMessages(msgs),
		Temperature: openai.Float(s.temperature),
		MaxTokens:   openai.Int(int64(s.maxTokens)),
	})
	if err != nil {
		log.WithError(err).Error("OpenAI chat completion failed")
		return fallbackReply
	}

	if len(resp.Choices) == 0 {
		log.Error("OpenAI response contained no choices, using fallback")
		return fallbackReply
	}
	return resp.Choices[0].Message.Content
}

func toOpenAIMessages(messages []models.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case models.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case models.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}
