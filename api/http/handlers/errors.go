package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/artem13815/hr-trainer/api/http/presenter"
	"github.com/artem13815/hr-trainer/pkg/evaluation"
	"github.com/artem13815/hr-trainer/pkg/interview"
	"github.com/artem13815/hr-trainer/pkg/llm"
	"github.com/artem13815/hr-trainer/pkg/training"
)

const msgInternal = "Erro interno do servidor"

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	var ve training.ErrValidation
	switch {
	case errors.Is(err, interview.ErrNotFound),
		errors.Is(err, interview.ErrCandidateNotFound),
		errors.Is(err, training.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, interview.ErrAlreadyCompleted),
		errors.Is(err, interview.ErrAlreadyEvaluated),
		errors.Is(err, interview.ErrTooShort),
		errors.Is(err, interview.ErrNotEvaluated),
		errors.As(err, &ve):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// MessageFor returns the user-facing text for err.
func MessageFor(err error) string {
	var (
		ge *llm.GenerationError
		ve training.ErrValidation
	)
	switch {
	case errors.Is(err, interview.ErrNotFound):
		return "Entrevista não encontrada"
	case errors.Is(err, interview.ErrCandidateNotFound):
		return "Candidato não encontrado"
	case errors.Is(err, interview.ErrAlreadyCompleted):
		return "Esta entrevista já foi finalizada"
	case errors.Is(err, interview.ErrAlreadyEvaluated):
		return "Esta entrevista já foi avaliada"
	case errors.Is(err, interview.ErrTooShort):
		return "Entrevista muito curta para avaliação"
	case errors.Is(err, interview.ErrNotEvaluated):
		return "Esta entrevista ainda não foi avaliada"
	case errors.Is(err, training.ErrNotFound):
		return "Prompt não encontrado"
	case errors.As(err, &ve):
		return string(ve)
	case errors.Is(err, evaluation.ErrInvalidFormat):
		return evaluation.MsgInvalidFormat
	case errors.As(err, &ge):
		return ge.Message
	}
	return msgInternal
}

// NewErrorHandler renders every error returned by handlers and middleware
// (recovered panics included) in the common error envelope. Handlers return domain
// errors as is.
func NewErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return presenter.Error(c, fe.Code, fe.Message)
		}
		status := StatusFor(err)
		entry := log.WithError(err).WithFields(logrus.Fields{"method": c.Method(), "path": c.Path(), "status": status})
		if status >= http.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Debug("request rejected")
		}
		return presenter.Error(c, status, MessageFor(err))
	}
}
