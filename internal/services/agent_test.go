package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"codecoach-backend/internal/models"
)

type completerMock struct {
	mock.Mock
}

func (m *completerMock) New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	args := m.Called(ctx, body, opts)
	resVal := args.Get(0)
	if resVal == nil {
		return nil, args.Error(1)
	}
	return resVal.(*openai.ChatCompletion), args.Error(1)
}

func newTestAgent(completer chatCompleter) *AgentService {
	return &AgentService{
		completions: completer,
		model:       "gpt-test",
		temperature: 0.7,
		maxTokens:   900,
		maxTurns:    12,
		maxChars:    4000,
	}
}

func TestGetResponse_ReturnsMockedReply(t *testing.T) {
	ctx := context.Background()
	completer := new(completerMock)

	completer.
		On("New", ctx, openai.ChatCompletionNewParams{
			Model: "gpt-test",
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(systemPrompt(map[string]any{"lesson": "Loops"})),
				openai.UserMessage("hello"),
			},
			Temperature: openai.Float(0.7),
			MaxTokens:   openai.Int(900),
		}, mock.Anything).
		Return(&openai.ChatCompletion{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "mocked reply"}},
			},
		}, nil)

	svc := newTestAgent(completer)
	out := svc.GetResponse(ctx, []models.ChatMessage{{Role: models.RoleUser, Content: "hello"}}, "u1", map[string]any{"lesson": "Loops"})

	assert.Equal(t, "mocked reply", out)
	completer.AssertExpectations(t)
}

func TestGetResponse_FallbackOnProviderError(t *testing.T) {
	completer := new(completerMock)
	completer.
		On("New", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("boom"))

	svc := newTestAgent(completer)
	out := svc.GetResponse(context.Background(), []models.ChatMessage{{Role: models.RoleUser, Content: "hello"}}, "", nil)

	assert.Equal(t, fallbackReply, out)
	assert.Contains(t, strings.ToLower(out), "try again")
}

func TestGetResponse_FallbackOnEmptyChoices(t *testing.T) {
	completer := new(completerMock)
	completer.
		On("New", mock.Anything, mock.Anything, mock.Anything).
		Return(&openai.ChatCompletion{}, nil)

	svc := newTestAgent(completer)
	out := svc.GetResponse(context.Background(), []models.ChatMessage{{Role: models.RoleUser, Content: "hello"}}, "", nil)

	assert.Equal(t, fallbackReply, out)
}

func TestGetResponse_EmptyContentChoice(t *testing.T) {
	completer := new(completerMock)
	completer.
		On("New", mock.Anything, mock.Anything, mock.Anything).
		Return(&openai.ChatCompletion{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: ""}},
			},
		}, nil)

	svc := newTestAgent(completer)
	out := svc.GetResponse(context.Background(), []models.ChatMessage{{Role: models.RoleUser, Content: "hello"}}, "", nil)

	assert.Equal(t, "", out)
}

func TestGetResponse_ShapesLongConversations(t *testing.T) {
	ctx := context.Background()
	completer := new(completerMock)

	completer.
		On("New", ctx, mock.MatchedBy(func(body openai.ChatCompletionNewParams) bool {
			// 12 retained turns plus the injected system message
			return len(body.Messages) == 13
		}), mock.Anything).
		Return(&openai.ChatCompletion{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "ok"}},
			},
		}, nil)

	msgs := make([]models.ChatMessage, 20)
	for i := range msgs {
		msgs[i] = models.ChatMessage{Role: models.RoleUser, Content: "turn"}
	}

	svc := newTestAgent(completer)
	out := svc.GetResponse(ctx, msgs, "", nil)

	assert.Equal(t, "ok", out)
	completer.AssertExpectations(t)
}
