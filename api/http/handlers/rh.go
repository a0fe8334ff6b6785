package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/hr-trainer/api/http/presenter"
	"github.com/artem13815/hr-trainer/pkg/interview"
	"github.com/artem13815/hr-trainer/pkg/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RHHandler — панель HR: только чтение.
type RHHandler struct {
	reports interview.Reporting
}

func NewRHHandler(reports interview.Reporting) *RHHandler { return &RHHandler{reports: reports} }

// @Summary Painel de entrevistas avaliadas
// @Tags    RH
// @Produce json
// @Param   limit  query int false "Tamanho da página (1..200)"
// @Param   offset query int false "Deslocamento"
// @Success 200 {object} presenter.Envelope{data=[]interview.DashboardItem}
// @Router  /rh/dashboard [get]
func (h *RHHandler) Dashboard(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 0)
	items, err := h.reports.Dashboard(c.Context())
	if err != nil {
		return err
	}
	// count: общее число, не размер страницы
	return presenter.List(c, http.StatusOK, page(items, limit, offset), len(items))
}

// @Summary Detalhes de uma entrevista avaliada
// @Tags    RH
// @Produce json
// @Param   id path string true "ID da entrevista (UUID)"
// @Success 200 {object} presenter.Envelope{data=interview.Details}
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /rh/interviews/{id} [get]
func (h *RHHandler) Interview(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	d, err := h.reports.InterviewDetails(c.Context(), id)
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, d)
}

// @Summary Perfil do candidato
// @Tags    RH
// @Produce json
// @Param   id path string true "ID do candidato (UUID)"
// @Success 200 {object} presenter.Envelope{data=interview.CandidateProfile}
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /rh/candidates/{id} [get]
func (h *RHHandler) Candidate(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := h.reports.CandidateProfile(c.Context(), id)
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary Relatório de avaliação
// @Tags    RH
// @Produce json
// @Param   id path string true "ID da entrevista (UUID)"
// @Success 200 {object} presenter.Envelope{data=interview.EvaluationReport}
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /rh/evaluations/{id} [get]
func (h *RHHandler) EvaluationReport(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	rep, err := h.reports.EvaluationReport(c.Context(), id)
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, rep)
}

// @Summary Exportar painel em XLSX
// @Tags    RH
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router  /rh/export.xlsx [get]
func (h *RHHandler) Export(c *fiber.Ctx) error {
	items, err := h.reports.Dashboard(c.Context())
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	var buf bytes.Buffer
	if err := report.WriteDashboard(&buf, items, now); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="entrevistas-%s.xlsx"`, now.Format("20060102")))
	return c.Status(http.StatusOK).Send(buf.Bytes())
}
