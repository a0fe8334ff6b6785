package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/hr-trainer/api/http/presenter"
	"github.com/artem13815/hr-trainer/pkg/report"
	"github.com/artem13815/hr-trainer/pkg/training"
)

type TrainingHandler struct {
	uc training.UseCase
}

func NewTrainingHandler(uc training.UseCase) *TrainingHandler { return &TrainingHandler{uc: uc} }

type createPromptRequest struct {
	Name               string   `json:"name" validate:"required,min=2,max=200"`
	Category           string   `json:"category" validate:"required,oneof=INTERVIEW CUSTOMER_SERVICE SALES TECHNICAL"`
	PromptType         string   `json:"promptType" validate:"required,oneof=INITIAL_MESSAGE FOLLOW_UP EVALUATION CUSTOM"`
	Content            string   `json:"content" validate:"required,min=1"`
	Language           string   `json:"language" validate:"omitempty,oneof=pt-BR en-US es-ES"`
	Behavior           string   `json:"behavior" validate:"omitempty,oneof=PROFESSIONAL FRIENDLY FORMAL CASUAL"`
	Tone               string   `json:"tone" validate:"omitempty,oneof=NEUTRAL POSITIVE ENCOURAGING CHALLENGING"`
	Context            string   `json:"context"`
	ExpectedResponse   string   `json:"expectedResponse"`
	EvaluationCriteria string   `json:"evaluationCriteria"`
	Difficulty         string   `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD EXPERT"`
	TimeLimit          *int     `json:"timeLimit" validate:"omitempty,min=1"`
	Keywords           []string `json:"keywords"`
	Priority           int      `json:"priority" validate:"omitempty,min=1"`
}

type createSessionRequest struct {
	SessionName string      `json:"sessionName" validate:"required,min=1,max=200"`
	Description string      `json:"description"`
	Prompts     []uuid.UUID `json:"prompts"`
}

// @Summary Listar prompts de treinamento
// @Tags    Treinamento
// @Produce json
// @Param   category query string false "Categoria"
// @Param   type     query string false "Tipo do prompt"
// @Param   q        query string false "Busca por palavras"
// @Param   active   query bool   false "Somente ativos"
// @Param   limit    query int    false "Tamanho da página (1..200)"
// @Param   offset   query int    false "Deslocamento"
// @Success 200 {object} presenter.Envelope{data=[]training.Prompt}
// @Router  /training/prompts [get]
func (h *TrainingHandler) ListPrompts(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 0)
	f := training.Filter{
		Category:   training.Category(strings.ToUpper(strings.TrimSpace(c.Query("category")))),
		PromptType: training.PromptType(strings.ToUpper(strings.TrimSpace(c.Query("type")))),
		Query:      c.Query("q"),
		ActiveOnly: c.QueryBool("active", false),
	}
	list, err := h.uc.ListPrompts(c.Context(), f)
	if err != nil {
		return err
	}
	return presenter.List(c, http.StatusOK, page(list, limit, offset), len(list))
}

// @Summary Criar prompt de treinamento
// @Tags    Treinamento
// @Accept  json
// @Produce json
// @Param   input body createPromptRequest true "Prompt"
// @Success 201 {object} presenter.Envelope{data=training.Prompt}
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /training/prompts [post]
func (h *TrainingHandler) CreatePrompt(c *fiber.Ctx) error {
	var req createPromptRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.uc.CreatePrompt(c.Context(), training.Prompt{
		Name:               req.Name,
		Category:           training.Category(req.Category),
		PromptType:         training.PromptType(req.PromptType),
		Content:            req.Content,
		Language:           req.Language,
		Behavior:           training.Behavior(req.Behavior),
		Tone:               training.Tone(req.Tone),
		Context:            req.Context,
		ExpectedResponse:   req.ExpectedResponse,
		EvaluationCriteria: req.EvaluationCriteria,
		Difficulty:         training.Difficulty(req.Difficulty),
		TimeLimit:          req.TimeLimit,
		Keywords:           req.Keywords,
		Priority:           req.Priority,
	})
	if err != nil {
		return err
	}
	return presenter.Message(c, http.StatusCreated, p, "Prompt criado com sucesso")
}

// @Summary Atualizar prompt de treinamento
// @Tags    Treinamento
// @Accept  json
// @Produce json
// @Param   id path string true "ID do prompt (UUID)"
// @Param   input body training.PromptPatch true "Campos a alterar"
// @Success 200 {object} presenter.Envelope{data=training.Prompt}
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /training/prompts/{id} [put]
func (h *TrainingHandler) UpdatePrompt(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var patch training.PromptPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "JSON inválido")
	}
	p, err := h.uc.UpdatePrompt(c.Context(), id, patch)
	if err != nil {
		return err
	}
	return presenter.Message(c, http.StatusOK, p, "Prompt atualizado com sucesso")
}

// @Summary Remover prompt de treinamento
// @Tags    Treinamento
// @Param   id path string true "ID do prompt (UUID)"
// @Success 200 {object} presenter.Envelope
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /training/prompts/{id} [delete]
func (h *TrainingHandler) DeletePrompt(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.uc.DeletePrompt(c.Context(), id); err != nil {
		return err
	}
	return presenter.Message(c, http.StatusOK, nil, "Prompt removido com sucesso")
}

// @Summary Estatísticas da biblioteca de treinamento
// @Tags    Treinamento
// @Produce json
// @Success 200 {object} presenter.Envelope{data=training.Stats}
// @Router  /training/stats [get]
func (h *TrainingHandler) Stats(c *fiber.Ctx) error {
	st, err := h.uc.Stats(c.Context())
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, st)
}

// @Summary Listar sessões de treinamento
// @Tags    Treinamento
// @Produce json
// @Param   limit  query int false "Tamanho da página (1..200)"
// @Param   offset query int false "Deslocamento"
// @Success 200 {object} presenter.Envelope{data=[]training.Session}
// @Router  /training/sessions [get]
func (h *TrainingHandler) ListSessions(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 0)
	list, err := h.uc.ListSessions(c.Context())
	if err != nil {
		return err
	}
	return presenter.List(c, http.StatusOK, page(list, limit, offset), len(list))
}

// @Summary Criar sessão de treinamento
// @Tags    Treinamento
// @Accept  json
// @Produce json
// @Param   input body createSessionRequest true "Sessão"
// @Success 201 {object} presenter.Envelope{data=training.Session}
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /training/sessions [post]
func (h *TrainingHandler) CreateSession(c *fiber.Ctx) error {
	var req createSessionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	s, err := h.uc.CreateSession(c.Context(), training.Session{
		SessionName: req.SessionName,
		Description: req.Description,
		PromptIDs:   req.Prompts,
	})
	if err != nil {
		return err
	}
	return presenter.Message(c, http.StatusCreated, s, "Sessão de treinamento criada com sucesso")
}

// @Summary Baixar modelo XLSX de prompts
// @Tags    Treinamento
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router  /training/template.xlsx [get]
func (h *TrainingHandler) Template(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := report.WritePromptTemplate(&buf); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="template-prompts.xlsx"`)
	return c.Status(http.StatusOK).Send(buf.Bytes())
}
