package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/hr-trainer/api/http/presenter"
	"github.com/artem13815/hr-trainer/pkg/interview"
)

type InterviewHandler struct {
	uc      interview.UseCase
	reports interview.Reporting
}

func NewInterviewHandler(uc interview.UseCase, reports interview.Reporting) *InterviewHandler {
	return &InterviewHandler{uc: uc, reports: reports}
}

type startInterviewRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,min=5,max=255,email"`
	JobProfile string `json:"jobProfile" validate:"required,min=2,max=100"`
}

type postMessageRequest struct {
	Message string `json:"message" validate:"required,min=1,max=1000"`
}

func (r *startInterviewRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.JobProfile = strings.TrimSpace(r.JobProfile)
}

func (r *postMessageRequest) normalize() { r.Message = strings.TrimSpace(r.Message) }

type replyResponse struct {
	Reply string `json:"reply"`
}

// @Summary     Iniciar entrevista
// @Description Cria (ou reutiliza) o candidato pelo email e abre a entrevista com a primeira fala do cliente.
// @Tags        Entrevistas
// @Accept      json
// @Produce     json
// @Param       input body startInterviewRequest true "Dados do candidato"
// @Success     201 {object} presenter.Envelope{data=interview.StartResult}
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     500 {object} presenter.ErrorResponse
// @Router      /interviews/start [post]
func (h *InterviewHandler) Start(c *fiber.Ctx) error {
	var req startInterviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.uc.Start(c.Context(), req.Name, req.Email, req.JobProfile)
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusCreated, res)
}

// @Summary Enviar mensagem
// @Tags    Entrevistas
// @Accept  json
// @Produce json
// @Param   id path string true "ID da entrevista (UUID)"
// @Param   input body postMessageRequest true "Mensagem do candidato"
// @Success 200 {object} presenter.Envelope{data=replyResponse}
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 429 {object} presenter.ErrorResponse
// @Router  /interviews/{id}/message [post]
func (h *InterviewHandler) PostMessage(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req postMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	reply, err := h.uc.PostMessage(c.Context(), id, req.Message)
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, replyResponse{Reply: reply})
}

// @Summary Detalhes da entrevista
// @Tags    Entrevistas
// @Produce json
// @Param   id path string true "ID da entrevista (UUID)"
// @Success 200 {object} presenter.Envelope{data=interview.Details}
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /interviews/{id} [get]
func (h *InterviewHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	d, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, d)
}

// @Summary Finalizar e avaliar entrevista
// @Tags    Entrevistas
// @Produce json
// @Param   id path string true "ID da entrevista (UUID)"
// @Success 200 {object} presenter.Envelope{data=interview.CompleteResult}
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /interviews/{id}/complete [post]
func (h *InterviewHandler) Complete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	res, err := h.uc.Complete(c.Context(), id)
	if err != nil {
		return err
	}
	return presenter.Message(c, http.StatusOK, res, "Entrevista finalizada e avaliada com sucesso")
}

// @Summary Estatísticas das entrevistas
// @Tags    Entrevistas
// @Produce json
// @Success 200 {object} presenter.Envelope{data=interview.Statistics}
// @Router  /interviews/statistics [get]
func (h *InterviewHandler) Statistics(c *fiber.Ctx) error {
	st, err := h.reports.Statistics(c.Context())
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, st)
}
