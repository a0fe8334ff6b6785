package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/hr-trainer/pkg/chat"
	"github.com/artem13815/hr-trainer/pkg/evaluation"
	"github.com/artem13815/hr-trainer/pkg/interview"
	"github.com/artem13815/hr-trainer/pkg/storage/postgres"
	"github.com/artem13815/hr-trainer/pkg/training"
)

// testPool connects to TEST_DATABASE_URL and applies migrations; without it the
// repository tests are skipped.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	require.NoError(t, postgres.Migrate(ctx, dsn, "up", nil))
	pool, err := postgres.Connect(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func newInterview(t *testing.T, repo *InterviewRepository) interview.Interview {
	t.Helper()
	ctx := context.Background()
	c, err := repo.FindOrCreateCandidate(ctx, interview.Candidate{
		Name:  "Ana",
		Email: uuid.NewString() + "@test.local",
	})
	require.NoError(t, err)

	iv := interview.Interview{
		ID:          uuid.New(),
		CandidateID: c.ID,
		JobProfile:  "Atendimento",
		Status:      interview.StatusInProgress,
		ChatHistory: []chat.Turn{chat.Assistant("Olá, preciso de ajuda.")},
		StartedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.CreateInterview(ctx, iv))
	return iv
}

func TestInterviewRepository_FindOrCreateCandidate(t *testing.T) {
	repo := NewInterviewRepository(testPool(t))
	ctx := context.Background()
	email := uuid.NewString() + "@test.local"

	first, err := repo.FindOrCreateCandidate(ctx, interview.Candidate{Name: "Ana", Email: email})
	require.NoError(t, err)
	second, err := repo.FindOrCreateCandidate(ctx, interview.Candidate{Name: "Outra", Email: email})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ana", second.Name)

	_, err = repo.GetCandidate(ctx, uuid.New())
	assert.ErrorIs(t, err, interview.ErrCandidateNotFound)
}

func TestInterviewRepository_AppendAndComplete(t *testing.T) {
	repo := NewInterviewRepository(testPool(t))
	ctx := context.Background()
	iv := newInterview(t, repo)

	require.NoError(t, repo.AppendTurns(ctx, iv.ID, chat.User("Posso ajudar?"), chat.Assistant("Meu pedido atrasou.")))
	got, err := repo.GetInterview(ctx, iv.ID)
	require.NoError(t, err)
	require.Len(t, got.ChatHistory, 3)
	assert.Equal(t, chat.RoleUser, got.ChatHistory[1].Role)
	assert.Equal(t, "Meu pedido atrasou.", got.ChatHistory[2].Content)

	ev := interview.Evaluation{
		ID:          uuid.New(),
		InterviewID: iv.ID,
		Scores: evaluation.Scores{
			Empathy:        evaluation.Score{Score: 7, Justification: "ok"},
			ProblemSolving: evaluation.Score{Score: 8, Justification: "ok"},
			Communication:  evaluation.Score{Score: 6, Justification: "ok"},
			ToneOfVoice:    evaluation.Score{Score: 9, Justification: "ok"},
			Efficiency:     evaluation.Score{Score: 5, Justification: "ok"},
		},
		Summary:      evaluation.Summary{Strength: "tom", DevelopmentArea: "agilidade"},
		OverallScore: 7,
		Model:        "test-model",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Complete(ctx, ev, time.Now().UTC()))

	stored, err := repo.GetEvaluation(ctx, iv.ID)
	require.NoError(t, err)
	assert.Equal(t, 7.0, stored.OverallScore)
	assert.Equal(t, "agilidade", stored.Summary.DevelopmentArea)
	assert.Equal(t, 9.0, stored.Scores.ToneOfVoice.Score)

	got, err = repo.GetInterview(ctx, iv.ID)
	require.NoError(t, err)
	assert.Equal(t, interview.StatusEvaluated, got.Status)
	assert.NotNil(t, got.CompletedAt)

	err = repo.AppendTurns(ctx, iv.ID, chat.User("mais uma"))
	assert.ErrorIs(t, err, interview.ErrAlreadyCompleted)

	ev.ID = uuid.New()
	err = repo.Complete(ctx, ev, time.Now().UTC())
	assert.ErrorIs(t, err, interview.ErrAlreadyEvaluated)
}

func TestInterviewRepository_NotFound(t *testing.T) {
	repo := NewInterviewRepository(testPool(t))
	ctx := context.Background()
	id := uuid.New()

	_, err := repo.GetInterview(ctx, id)
	assert.ErrorIs(t, err, interview.ErrNotFound)
	assert.ErrorIs(t, repo.AppendTurns(ctx, id, chat.User("x")), interview.ErrNotFound)
	assert.ErrorIs(t, repo.Complete(ctx, interview.Evaluation{ID: uuid.New(), InterviewID: id}, time.Now()), interview.ErrNotFound)
	_, err = repo.GetEvaluation(ctx, id)
	assert.ErrorIs(t, err, interview.ErrNotFound)
}

func TestTrainingRepository_PromptLifecycle(t *testing.T) {
	repo := NewTrainingRepository(testPool(t))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	p := training.Prompt{
		ID:         uuid.New(),
		Name:       "Cliente irritado",
		Category:   training.CategoryCustomerService,
		PromptType: training.PromptInitialMessage,
		Content:    "Meu pedido atrasou!",
		Language:   "pt-BR",
		Behavior:   training.BehaviorProfessional,
		Tone:       training.ToneNeutral,
		Difficulty: training.DifficultyMedium,
		Keywords:   []string{"atraso"},
		Priority:   1,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, repo.CreatePrompt(ctx, p))

	got, err := repo.GetPrompt(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, []string{"atraso"}, got.Keywords)

	got.Content = "Quero cancelar."
	require.NoError(t, repo.UpdatePrompt(ctx, got))
	got, err = repo.GetPrompt(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quero cancelar.", got.Content)

	require.NoError(t, repo.DeletePrompt(ctx, p.ID))
	_, err = repo.GetPrompt(ctx, p.ID)
	assert.ErrorIs(t, err, training.ErrNotFound)
	assert.ErrorIs(t, repo.DeletePrompt(ctx, p.ID), training.ErrNotFound)
}
