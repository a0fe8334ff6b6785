package interview

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Reporting — чтение данных для панели HR. Интервью не изменяет.
type Reporting interface {
	Dashboard(ctx context.Context) ([]DashboardItem, error)
	Statistics(ctx context.Context) (Statistics, error)
	InterviewDetails(ctx context.Context, id uuid.UUID) (Details, error)
	CandidateProfile(ctx context.Context, candidateID uuid.UUID) (CandidateProfile, error)
	EvaluationReport(ctx context.Context, id uuid.UUID) (EvaluationReport, error)
}

type reporting struct {
	repo       Repository
	staleAfter time.Duration
	now        func() time.Time
}

// NewReporting; staleAfter <= 0 disables the stale counter.
func NewReporting(repo Repository, staleAfter time.Duration) Reporting {
	return &reporting{
		repo:       repo,
		staleAfter: staleAfter,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (r *reporting) Dashboard(ctx context.Context) ([]DashboardItem, error) {
	items, err := r.repo.ListEvaluated(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []DashboardItem{}
	}
	return items, nil
}

// Statistics собирает агрегаты параллельно.
func (r *reporting) Statistics(ctx context.Context) (Statistics, error) {
	var st Statistics
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.TotalInterviews, err = r.repo.CountInterviews(ctx)
		return err
	})
	g.Go(func() (err error) {
		st.CompletedInterviews, err = r.repo.CountByStatus(ctx, StatusEvaluated)
		return err
	})
	g.Go(func() (err error) {
		st.AverageScore, err = r.repo.AverageScore(ctx)
		return err
	})
	g.Go(func() (err error) {
		st.ScoreDistribution, err = r.repo.ScoreDistribution(ctx)
		return err
	})
	if r.staleAfter > 0 {
		g.Go(func() (err error) {
			st.StaleInterviews, err = r.repo.CountStale(ctx, r.now().Add(-r.staleAfter))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Statistics{}, err
	}
	if st.ScoreDistribution == nil {
		st.ScoreDistribution = []ScoreBucket{}
	}
	return st, nil
}

func (r *reporting) InterviewDetails(ctx context.Context, id uuid.UUID) (Details, error) {
	iv, err := r.repo.GetInterview(ctx, id)
	if err != nil {
		return Details{}, err
	}
	if iv.Status != StatusEvaluated {
		return Details{}, ErrNotEvaluated
	}
	cand, err := r.repo.GetCandidate(ctx, iv.CandidateID)
	if err != nil {
		return Details{}, err
	}
	ev, err := r.repo.GetEvaluation(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Details{}, ErrNotEvaluated
		}
		return Details{}, err
	}
	return Details{Interview: iv, Candidate: cand, Evaluation: &ev}, nil
}

func (r *reporting) CandidateProfile(ctx context.Context, candidateID uuid.UUID) (CandidateProfile, error) {
	cand, err := r.repo.GetCandidate(ctx, candidateID)
	if err != nil {
		return CandidateProfile{}, err
	}
	list, err := r.repo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return CandidateProfile{}, err
	}
	if list == nil {
		list = []InterviewSummary{}
	}
	return CandidateProfile{Candidate: cand, Interviews: list}, nil
}

func (r *reporting) EvaluationReport(ctx context.Context, id uuid.UUID) (EvaluationReport, error) {
	d, err := r.InterviewDetails(ctx, id)
	if err != nil {
		return EvaluationReport{}, err
	}
	return EvaluationReport{
		InterviewID: d.ID,
		Candidate:   d.Candidate,
		JobProfile:  d.JobProfile,
		CompletedAt: d.CompletedAt,
		Evaluation:  *d.Evaluation,
	}, nil
}
