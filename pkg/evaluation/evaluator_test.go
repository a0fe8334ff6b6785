package evaluation

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/hr-trainer/pkg/chat"
	"github.com/artem13815/hr-trainer/pkg/llm"
)

type mockChatModel struct {
	SendFunc func(ctx context.Context, messages []llm.Message) (string, error)
}

func (m *mockChatModel) Send(ctx context.Context, messages []llm.Message) (string, error) {
	return m.SendFunc(ctx, messages)
}

func newTestGenerator(m llm.ChatModel) *Generator {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewGenerator(m, l)
}

var sampleHistory = []chat.Turn{
	chat.Assistant("Minha internet está lenta."),
	chat.User("Posso ajudar, qual o seu CPF?"),
	chat.Assistant("123."),
}

func TestTranscript(t *testing.T) {
	got := Transcript(sampleHistory)
	assert.Equal(t, "Cliente: Minha internet está lenta.\nCandidato: Posso ajudar, qual o seu CPF?\nCliente: 123.", got)
}

func TestEvaluate_SendsRubricAndTranscriptAsSingleUserMessage(t *testing.T) {
	var sent []llm.Message
	g := newTestGenerator(&mockChatModel{SendFunc: func(_ context.Context, m []llm.Message) (string, error) {
		sent = m
		return "```json\n" + validReply + "\n```", nil
	}})

	res, err := g.Evaluate(context.Background(), sampleHistory)
	require.NoError(t, err)
	assert.Equal(t, 9.0, res.Scores.Efficiency.Score)

	require.Len(t, sent, 1)
	assert.Equal(t, llm.RoleUser, sent[0].Role)
	assert.True(t, strings.HasPrefix(sent[0].Content, RubricPrompt))
	assert.True(t, strings.HasSuffix(sent[0].Content, Transcript(sampleHistory)))
}

func TestEvaluate_ShellFailureIsGenerationError(t *testing.T) {
	g := newTestGenerator(&mockChatModel{SendFunc: func(context.Context, []llm.Message) (string, error) {
		return "", llm.ErrTimeout
	}})

	_, err := g.Evaluate(context.Background(), sampleHistory)
	var ge *llm.GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, MsgEvaluationFailed, ge.Message)
	assert.ErrorIs(t, err, llm.ErrTimeout)
	assert.False(t, errors.Is(err, ErrInvalidFormat))
}

func TestEvaluate_UnusableReplyIsFormatError(t *testing.T) {
	g := newTestGenerator(&mockChatModel{SendFunc: func(context.Context, []llm.Message) (string, error) {
		return `{"scores": {}, "summary": {}}`, nil
	}})

	_, err := g.Evaluate(context.Background(), sampleHistory)
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.False(t, errors.Is(err, llm.ErrGeneration))
}
