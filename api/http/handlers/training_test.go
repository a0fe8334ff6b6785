package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/hr-trainer/pkg/interview"
	"github.com/artem13815/hr-trainer/pkg/llm"
	"github.com/artem13815/hr-trainer/pkg/training"
)

type stubTrainingUseCase struct {
	training.UseCase
	created training.Prompt
	filter  training.Filter
	err     error
}

func (s *stubTrainingUseCase) CreatePrompt(_ context.Context, p training.Prompt) (training.Prompt, error) {
	if s.err != nil {
		return training.Prompt{}, s.err
	}
	p.ID = uuid.New()
	s.created = p
	return p, nil
}

func (s *stubTrainingUseCase) DeletePrompt(context.Context, uuid.UUID) error { return s.err }

func (s *stubTrainingUseCase) ListPrompts(_ context.Context, f training.Filter) ([]training.Prompt, error) {
	s.filter = f
	return []training.Prompt{{Name: "a"}, {Name: "b"}, {Name: "c"}}, s.err
}

func TestTraining_CreatePrompt(t *testing.T) {
	uc := &stubTrainingUseCase{}
	app := newTestApp()
	h := NewTrainingHandler(uc)
	app.Post("/prompts", h.CreatePrompt)

	status, env := do(t, app, http.MethodPost, "/prompts",
		`{"name":"Abertura","category":"SALES","promptType":"CUSTOM","content":"Olá","tone":"POSITIVE"}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)
	assert.Equal(t, training.TonePositive, uc.created.Tone)

	status, env = do(t, app, http.MethodPost, "/prompts",
		`{"name":"Abertura","category":"HR","promptType":"CUSTOM","content":"Olá"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Error, "category")
}

func TestTraining_DeleteNotFound(t *testing.T) {
	app := newTestApp()
	h := NewTrainingHandler(&stubTrainingUseCase{err: training.ErrNotFound})
	app.Delete("/prompts/:id", h.DeletePrompt)

	status, env := do(t, app, http.MethodDelete, "/prompts/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Prompt não encontrado", env.Error)
}

func TestTraining_ListHasCount(t *testing.T) {
	app := newTestApp()
	h := NewTrainingHandler(&stubTrainingUseCase{})
	app.Get("/prompts", h.ListPrompts)

	_, env := do(t, app, http.MethodGet, "/prompts", "")
	require.NotNil(t, env.Count)
	assert.Equal(t, 3, *env.Count)
}

func TestTraining_ListFilterAndPage(t *testing.T) {
	uc := &stubTrainingUseCase{}
	app := newTestApp()
	h := NewTrainingHandler(uc)
	app.Get("/prompts", h.ListPrompts)

	status, env := do(t, app, http.MethodGet, "/prompts?category=sales&q=plano&active=true&limit=1&offset=1", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, training.CategorySales, uc.filter.Category)
	assert.Equal(t, "plano", uc.filter.Query)
	assert.True(t, uc.filter.ActiveOnly)

	var list []training.Prompt
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Name)
	require.NotNil(t, env.Count)
	assert.Equal(t, 3, *env.Count)

	_, env = do(t, app, http.MethodGet, "/prompts?offset=10", "")
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list)
}

func TestTraining_Template(t *testing.T) {
	app := newTestApp()
	h := NewTrainingHandler(&stubTrainingUseCase{})
	app.Get("/template.xlsx", h.Template)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/template.xlsx", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(training.ErrValidation("x")))
	assert.Equal(t, http.StatusNotFound, StatusFor(interview.ErrCandidateNotFound))
	assert.Equal(t, http.StatusBadRequest, StatusFor(interview.ErrNotEvaluated))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(llm.ErrInvalidResponseFormat))
}
