package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/artem13815/hr-trainer/pkg/interview"
)

func (r *InterviewRepository) ListEvaluated(ctx context.Context) ([]interview.DashboardItem, error) {
	rows, err := r.pool.Query(ctx, `
SELECT i.id, i.job_profile, i.started_at, i.completed_at, c.name, c.email,
       e.id, e.interview_id, e.scores, e.summary, e.overall_score::float8, e.model, e.created_at
FROM interviews i
JOIN candidates c ON c.id = i.candidate_id
JOIN evaluations e ON e.interview_id = i.id
WHERE i.status = 'EVALUATED'
ORDER BY i.completed_at DESC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []interview.DashboardItem
	for rows.Next() {
		var (
			it        interview.DashboardItem
			completed *time.Time
		)
		ev, err := scanEvaluation(prefixRow{rows: rows, prefix: []any{
			&it.InterviewID, &it.JobProfile, &it.StartedAt, &completed, &it.CandidateName, &it.CandidateEmail,
		}})
		if err != nil {
			return nil, err
		}
		it.Evaluation = ev
		it.StartedAt = it.StartedAt.UTC()
		if completed != nil {
			t := completed.UTC()
			it.CompletedAt = &t
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *InterviewRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]interview.InterviewSummary, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+interviewColumns+` FROM interviews WHERE candidate_id = $1 ORDER BY started_at DESC
`, candidateID)
	if err != nil {
		return nil, err
	}
	var out []interview.InterviewSummary
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, interview.InterviewSummary{Interview: iv})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Status != interview.StatusEvaluated {
			continue
		}
		ev, err := r.GetEvaluation(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Evaluation = &ev
	}
	return out, nil
}

func (r *InterviewRepository) CountInterviews(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM interviews`).Scan(&n)
	return n, err
}

func (r *InterviewRepository) CountByStatus(ctx context.Context, status interview.Status) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM interviews WHERE status = $1`, string(status)).Scan(&n)
	return n, err
}

func (r *InterviewRepository) CountStale(ctx context.Context, startedBefore time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM interviews WHERE status = 'IN_PROGRESS' AND started_at < $1
`, startedBefore).Scan(&n)
	return n, err
}

func (r *InterviewRepository) AverageScore(ctx context.Context) (float64, error) {
	var avg float64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(AVG(overall_score), 0)::float8 FROM evaluations`).Scan(&avg)
	return avg, err
}

func (r *InterviewRepository) ScoreDistribution(ctx context.Context) ([]interview.ScoreBucket, error) {
	rows, err := r.pool.Query(ctx, `
SELECT overall_score::float8, COUNT(*) FROM evaluations
GROUP BY overall_score ORDER BY overall_score ASC
`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (interview.ScoreBucket, error) {
		var b interview.ScoreBucket
		err := row.Scan(&b.OverallScore, &b.Count)
		return b, err
	})
}

// prefixRow lets scanEvaluation read the trailing evaluation columns of a joined row.
type prefixRow struct {
	rows   pgx.Rows
	prefix []any
}

func (p prefixRow) Scan(dest ...any) error {
	return p.rows.Scan(append(p.prefix, dest...)...)
}
