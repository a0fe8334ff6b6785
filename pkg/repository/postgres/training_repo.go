package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/hr-trainer/pkg/training"
)

// TrainingRepository хранит библиотеку промптов и тренировочные сессии.
type TrainingRepository struct {
	pool *pgxpool.Pool
}

func NewTrainingRepository(pool *pgxpool.Pool) *TrainingRepository {
	return &TrainingRepository{pool: pool}
}

const promptColumns = `id, name, category, prompt_type, content, language, behavior, tone, context,
expected_response, evaluation_criteria, difficulty, time_limit, keywords, priority, is_active,
created_at, updated_at`

func scanPrompt(row pgx.Row) (training.Prompt, error) {
	var (
		p                                                training.Prompt
		category, promptType, behavior, tone, difficulty string
	)
	err := row.Scan(&p.ID, &p.Name, &category, &promptType, &p.Content, &p.Language, &behavior, &tone,
		&p.Context, &p.ExpectedResponse, &p.EvaluationCriteria, &difficulty, &p.TimeLimit, &p.Keywords,
		&p.Priority, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return training.Prompt{}, err
	}
	p.Category = training.Category(category)
	p.PromptType = training.PromptType(promptType)
	p.Behavior = training.Behavior(behavior)
	p.Tone = training.Tone(tone)
	p.Difficulty = training.Difficulty(difficulty)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	if p.Keywords == nil {
		p.Keywords = []string{}
	}
	return p, nil
}

func (r *TrainingRepository) ListPrompts(ctx context.Context) ([]training.Prompt, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+promptColumns+` FROM training_prompts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (training.Prompt, error) {
		return scanPrompt(row)
	})
}

func (r *TrainingRepository) GetPrompt(ctx context.Context, id uuid.UUID) (training.Prompt, error) {
	p, err := scanPrompt(r.pool.QueryRow(ctx, `SELECT `+promptColumns+` FROM training_prompts WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return training.Prompt{}, training.ErrNotFound
	}
	return p, err
}

func (r *TrainingRepository) CreatePrompt(ctx context.Context, p training.Prompt) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO training_prompts (`+promptColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
`, p.ID, p.Name, string(p.Category), string(p.PromptType), p.Content, p.Language, string(p.Behavior),
		string(p.Tone), p.Context, p.ExpectedResponse, p.EvaluationCriteria, string(p.Difficulty), p.TimeLimit,
		p.Keywords, p.Priority, p.IsActive, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *TrainingRepository) UpdatePrompt(ctx context.Context, p training.Prompt) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE training_prompts SET
	name = $2, category = $3, prompt_type = $4, content = $5, language = $6, behavior = $7,
	tone = $8, context = $9, expected_response = $10, evaluation_criteria = $11, difficulty = $12,
	time_limit = $13, keywords = $14, priority = $15, is_active = $16, updated_at = $17
WHERE id = $1
`, p.ID, p.Name, string(p.Category), string(p.PromptType), p.Content, p.Language, string(p.Behavior),
		string(p.Tone), p.Context, p.ExpectedResponse, p.EvaluationCriteria, string(p.Difficulty), p.TimeLimit,
		p.Keywords, p.Priority, p.IsActive, p.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return training.ErrNotFound
	}
	return nil
}

func (r *TrainingRepository) DeletePrompt(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM training_prompts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return training.ErrNotFound
	}
	return nil
}

func (r *TrainingRepository) Stats(ctx context.Context) (training.Stats, error) {
	var (
		st   training.Stats
		last *time.Time
	)
	err := r.pool.QueryRow(ctx, `
SELECT
	(SELECT COUNT(*) FROM training_prompts WHERE is_active),
	(SELECT COUNT(*) FROM training_sessions),
	(SELECT COUNT(DISTINCT category) FROM training_prompts),
	(SELECT MAX(updated_at) FROM training_prompts)
`).Scan(&st.ActivePrompts, &st.TrainingSessions, &st.Categories, &last)
	if err != nil {
		return training.Stats{}, err
	}
	if last != nil {
		t := last.UTC()
		st.LastUpdate = &t
	}
	return st, nil
}

func (r *TrainingRepository) CreateSession(ctx context.Context, s training.Session) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO training_sessions (id, session_name, description, prompt_ids, status, started_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, s.ID, s.SessionName, s.Description, s.PromptIDs, s.Status, s.StartedAt)
	return err
}

func (r *TrainingRepository) ListSessions(ctx context.Context) ([]training.Session, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, session_name, description, prompt_ids, status, started_at, completed_at
FROM training_sessions ORDER BY started_at DESC
`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (training.Session, error) {
		var s training.Session
		err := row.Scan(&s.ID, &s.SessionName, &s.Description, &s.PromptIDs, &s.Status, &s.StartedAt, &s.CompletedAt)
		s.StartedAt = s.StartedAt.UTC()
		return s, err
	})
}
