// Package evaluation scores a finished interview transcript against a fixed
// five-criteria rubric using a chat model.
package evaluation

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/artem13815/hr-trainer/pkg/chat"
	"github.com/artem13815/hr-trainer/pkg/llm"
)

const MsgEvaluationFailed = "Falha ao gerar avaliação da entrevista"

// RubricPrompt precedes the transcript in the single evaluation request.
const RubricPrompt = `Você é um gerente de RH sênior especializado em treinamento de equipes de atendimento ao cliente.
Analise a transcrição de entrevista abaixo e avalie o desempenho do candidato numa escala de 1 (muito fraco) a 10 (excelente) em cada critério: Empatia, Resolução de Problemas, Clareza na Comunicação, Tom de Voz e Eficiência.

Para cada critério, informe:
1. A nota (um número de 1 a 10).
2. Uma justificativa detalhada, citando trechos da conversa.
Ao final, faça um resumo com o principal ponto forte e a principal área a desenvolver.

Responda estritamente em JSON, com esta estrutura:
{
  "scores": {
    "empathy": { "score": <nota>, "justification": "<justificativa>" },
    "problemSolving": { "score": <nota>, "justification": "<justificativa>" },
    "communication": { "score": <nota>, "justification": "<justificativa>" },
    "toneOfVoice": { "score": <nota>, "justification": "<justificativa>" },
    "efficiency": { "score": <nota>, "justification": "<justificativa>" }
  },
  "summary": {
    "strength": "<ponto forte>",
    "developmentArea": "<área a desenvolver>"
  }
}

---
TRANSCRIÇÃO:
`

// Transcript renders the history one line per turn: the candidate is "Candidato",
// the persona is "Cliente".
func Transcript(history []chat.Turn) string {
	lines := make([]string, 0, len(history))
	for _, t := range history {
		speaker := "Cliente"
		if t.Role == chat.RoleUser {
			speaker = "Candidato"
		}
		lines = append(lines, speaker+": "+t.Content)
	}
	return strings.Join(lines, "\n")
}

// Generator asks the model for a rubric evaluation and validates the reply.
type Generator struct {
	model llm.ChatModel
	log   logrus.FieldLogger
}

func NewGenerator(model llm.ChatModel, log logrus.FieldLogger) *Generator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Generator{model: model, log: log.WithField("component", "evaluation")}
}

// Evaluate returns either a fully validated Result or an error: a
// *llm.GenerationError when the model could not be reached, a *FormatError when
// its reply is unusable.
func (g *Generator) Evaluate(ctx context.Context, history []chat.Turn) (Result, error) {
	prompt := RubricPrompt + Transcript(history)
	reply, err := g.model.Send(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}})
	if err != nil {
		g.log.WithError(err).Error("evaluation request failed")
		return Result{}, llm.NewGenerationError(MsgEvaluationFailed, err)
	}

	out, err := Parse(reply)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) && fe.Criterion != "" {
			g.log.WithField("criterion", fe.Criterion).Warn("evaluation reply rejected")
		}
		g.log.WithError(err).WithField("raw", reply).Error("evaluation reply is not usable")
		return Result{}, err
	}
	return out, nil
}
