package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/hr-trainer/pkg/chat"
	"github.com/artem13815/hr-trainer/pkg/interview"
)

// InterviewRepository хранит кандидатов, интервью и оценки.
type InterviewRepository struct {
	pool *pgxpool.Pool
}

func NewInterviewRepository(pool *pgxpool.Pool) *InterviewRepository {
	return &InterviewRepository{pool: pool}
}

func (r *InterviewRepository) FindOrCreateCandidate(ctx context.Context, c interview.Candidate) (interview.Candidate, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO candidates (id, name, email, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO NOTHING
`, c.ID, c.Name, c.Email, c.CreatedAt)
	if err != nil {
		return interview.Candidate{}, err
	}
	row := r.pool.QueryRow(ctx, `SELECT id, name, email, created_at FROM candidates WHERE email = $1`, c.Email)
	return scanCandidate(row)
}

func (r *InterviewRepository) GetCandidate(ctx context.Context, id uuid.UUID) (interview.Candidate, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, name, email, created_at FROM candidates WHERE id = $1`, id)
	c, err := scanCandidate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return interview.Candidate{}, interview.ErrCandidateNotFound
	}
	return c, err
}

func scanCandidate(row pgx.Row) (interview.Candidate, error) {
	var c interview.Candidate
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt); err != nil {
		return interview.Candidate{}, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}

func (r *InterviewRepository) CreateInterview(ctx context.Context, iv interview.Interview) error {
	history, err := json.Marshal(nonNilTurns(iv.ChatHistory))
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO interviews (id, candidate_id, job_profile, status, chat_history, started_at)
VALUES ($1, $2, $3, $4, $5::jsonb, $6)
`, iv.ID, iv.CandidateID, iv.JobProfile, string(iv.Status), history, iv.StartedAt)
	return err
}

const interviewColumns = `id, candidate_id, job_profile, status, chat_history, started_at, completed_at`

func (r *InterviewRepository) GetInterview(ctx context.Context, id uuid.UUID) (interview.Interview, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id)
	iv, err := scanInterview(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return interview.Interview{}, interview.ErrNotFound
	}
	return iv, err
}

func scanInterview(row pgx.Row) (interview.Interview, error) {
	var (
		iv        interview.Interview
		status    string
		history   []byte
		completed *time.Time
	)
	if err := row.Scan(&iv.ID, &iv.CandidateID, &iv.JobProfile, &status, &history, &iv.StartedAt, &completed); err != nil {
		return interview.Interview{}, err
	}
	if err := json.Unmarshal(history, &iv.ChatHistory); err != nil {
		return interview.Interview{}, fmt.Errorf("decode chat history: %w", err)
	}
	iv.Status = interview.Status(status)
	iv.StartedAt = iv.StartedAt.UTC()
	if completed != nil {
		t := completed.UTC()
		iv.CompletedAt = &t
	}
	return iv, nil
}

// AppendTurns дописывает реплики одним UPDATE; оценённое интервью не меняется.
func (r *InterviewRepository) AppendTurns(ctx context.Context, id uuid.UUID, turns ...chat.Turn) error {
	data, err := json.Marshal(nonNilTurns(turns))
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
UPDATE interviews SET chat_history = chat_history || $2::jsonb
WHERE id = $1 AND status = 'IN_PROGRESS'
`, id, data)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	return r.explainMissedUpdate(ctx, r.pool, id, interview.ErrAlreadyCompleted)
}

func (r *InterviewRepository) GetEvaluation(ctx context.Context, interviewID uuid.UUID) (interview.Evaluation, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, interview_id, scores, summary, overall_score::float8, model, created_at
FROM evaluations WHERE interview_id = $1
`, interviewID)
	ev, err := scanEvaluation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return interview.Evaluation{}, interview.ErrNotFound
	}
	return ev, err
}

func scanEvaluation(row pgx.Row) (interview.Evaluation, error) {
	var (
		ev      interview.Evaluation
		scores  []byte
		summary []byte
	)
	if err := row.Scan(&ev.ID, &ev.InterviewID, &scores, &summary, &ev.OverallScore, &ev.Model, &ev.CreatedAt); err != nil {
		return interview.Evaluation{}, err
	}
	if err := json.Unmarshal(scores, &ev.Scores); err != nil {
		return interview.Evaluation{}, fmt.Errorf("decode scores: %w", err)
	}
	if err := json.Unmarshal(summary, &ev.Summary); err != nil {
		return interview.Evaluation{}, fmt.Errorf("decode summary: %w", err)
	}
	ev.CreatedAt = ev.CreatedAt.UTC()
	return ev, nil
}

// Complete: переход статуса и вставка оценки в одной транзакции. Условный UPDATE
// гарантирует, что из двух конкурентных вызовов успешен только один.
func (r *InterviewRepository) Complete(ctx context.Context, ev interview.Evaluation, completedAt time.Time) error {
	scores, err := json.Marshal(ev.Scores)
	if err != nil {
		return err
	}
	summary, err := json.Marshal(ev.Summary)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
UPDATE interviews SET status = 'EVALUATED', completed_at = $2
WHERE id = $1 AND status = 'IN_PROGRESS'
`, ev.InterviewID, completedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return r.explainMissedUpdate(ctx, tx, ev.InterviewID, interview.ErrAlreadyEvaluated)
	}

	_, err = tx.Exec(ctx, `
INSERT INTO evaluations (id, interview_id, scores, summary, overall_score, model, created_at)
VALUES ($1, $2, $3::jsonb, $4::jsonb, $5, $6, $7)
`, ev.ID, ev.InterviewID, scores, summary, ev.OverallScore, ev.Model, ev.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return interview.ErrAlreadyEvaluated
		}
		return err
	}
	return tx.Commit(ctx)
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// explainMissedUpdate distinguishes a missing interview from one that is no longer
// in progress after a conditional UPDATE touched no rows.
func (r *InterviewRepository) explainMissedUpdate(ctx context.Context, q querier, id uuid.UUID, notInProgress error) error {
	var status string
	err := q.QueryRow(ctx, `SELECT status FROM interviews WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return interview.ErrNotFound
	}
	if err != nil {
		return err
	}
	return notInProgress
}

func nonNilTurns(t []chat.Turn) []chat.Turn {
	if t == nil {
		return []chat.Turn{}
	}
	return t
}
