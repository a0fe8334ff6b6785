// Package persona produces the simulated customer's side of a training chat.
package persona

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/artem13815/hr-trainer/pkg/chat"
	"github.com/artem13815/hr-trainer/pkg/llm"
)

const (
	MsgOpeningFailed = "Falha ao gerar mensagem inicial da IA"
	MsgReplyFailed   = "Falha ao gerar resposta da IA"
)

var errEmptyReply = errors.New("persona: model returned an empty reply")

// SystemPrompt frames the model as an unhappy telecom customer.
const SystemPrompt = `Você é um cliente de uma operadora de telecomunicações e está insatisfeito com o seu serviço de internet. Você conversa com o atendente (o candidato) para tentar resolver o problema.

REGRAS:
- Seu problema: "a internet está muito lenta nos últimos dias"
- Comece a conversa se apresentando como cliente e reclamando do problema
- Seja um pouco impaciente, frustrado mas educado, persistente sem ser agressivo
- Faça perguntas específicas sobre o problema e descreva-o de forma realista
- Quando o atendente resolver o problema de forma adequada, agradeça e encerre a conversa
- Responda de forma concisa, no máximo 2 ou 3 frases
- Use linguagem natural e coloquial do português brasileiro`

// Generator turns an interview history into the persona's next line.
type Generator struct {
	model llm.ChatModel
	log   logrus.FieldLogger
}

func NewGenerator(model llm.ChatModel, log logrus.FieldLogger) *Generator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Generator{model: model, log: log.WithField("component", "persona")}
}

// OpeningLine asks the model to start the conversation with only the persona prompt.
func (g *Generator) OpeningLine(ctx context.Context) (string, error) {
	return g.generate(ctx, nil, MsgOpeningFailed)
}

// NextLine replies to the full ordered history.
func (g *Generator) NextLine(ctx context.Context, history []chat.Turn) (string, error) {
	return g.generate(ctx, history, MsgReplyFailed)
}

func (g *Generator) generate(ctx context.Context, history []chat.Turn, failure string) (string, error) {
	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: SystemPrompt})
	for _, t := range history {
		messages = append(messages, llm.Message{Role: string(t.Role), Content: t.Content})
	}

	reply, err := g.model.Send(ctx, messages)
	if err == nil && strings.TrimSpace(reply) == "" {
		err = errEmptyReply
	}
	if err != nil {
		g.log.WithError(err).WithField("turns", len(history)).Error("persona generation failed")
		return "", llm.NewGenerationError(failure, err)
	}
	return reply, nil
}
