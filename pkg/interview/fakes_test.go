package interview

import (
	"context"
	"io"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/artem13815/hr-trainer/pkg/chat"
	"github.com/artem13815/hr-trainer/pkg/evaluation"
)

// memRepo is an in-memory Repository with the same conditional-write rules as the
// Postgres implementation.
type memRepo struct {
	mu          sync.Mutex
	candidates  map[uuid.UUID]Candidate
	byEmail     map[string]uuid.UUID
	interviews  map[uuid.UUID]Interview
	evaluations map[uuid.UUID]Evaluation
}

func newMemRepo() *memRepo {
	return &memRepo{
		candidates:  map[uuid.UUID]Candidate{},
		byEmail:     map[string]uuid.UUID{},
		interviews:  map[uuid.UUID]Interview{},
		evaluations: map[uuid.UUID]Evaluation{},
	}
}

func (m *memRepo) FindOrCreateCandidate(_ context.Context, c Candidate) (Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.byEmail[c.Email]; ok {
		return m.candidates[id], nil
	}
	m.candidates[c.ID] = c
	m.byEmail[c.Email] = c.ID
	return c, nil
}

func (m *memRepo) GetCandidate(_ context.Context, id uuid.UUID) (Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.candidates[id]
	if !ok {
		return Candidate{}, ErrCandidateNotFound
	}
	return c, nil
}

func (m *memRepo) CreateInterview(_ context.Context, iv Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	iv.ChatHistory = slices.Clone(iv.ChatHistory)
	m.interviews[iv.ID] = iv
	return nil
}

func (m *memRepo) GetInterview(_ context.Context, id uuid.UUID) (Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	iv, ok := m.interviews[id]
	if !ok {
		return Interview{}, ErrNotFound
	}
	iv.ChatHistory = slices.Clone(iv.ChatHistory)
	return iv, nil
}

func (m *memRepo) AppendTurns(_ context.Context, id uuid.UUID, turns ...chat.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	iv, ok := m.interviews[id]
	if !ok {
		return ErrNotFound
	}
	if iv.Status != StatusInProgress {
		return ErrAlreadyCompleted
	}
	iv.ChatHistory = append(iv.ChatHistory, turns...)
	m.interviews[id] = iv
	return nil
}

func (m *memRepo) GetEvaluation(_ context.Context, interviewID uuid.UUID) (Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev, ok := m.evaluations[interviewID]
	if !ok {
		return Evaluation{}, ErrNotFound
	}
	return ev, nil
}

func (m *memRepo) Complete(_ context.Context, ev Evaluation, completedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	iv, ok := m.interviews[ev.InterviewID]
	if !ok {
		return ErrNotFound
	}
	if iv.Status != StatusInProgress {
		return ErrAlreadyEvaluated
	}
	if _, exists := m.evaluations[ev.InterviewID]; exists {
		return ErrAlreadyEvaluated
	}
	iv.Status = StatusEvaluated
	iv.CompletedAt = &completedAt
	m.interviews[iv.ID] = iv
	m.evaluations[ev.InterviewID] = ev
	return nil
}

func (m *memRepo) ListEvaluated(_ context.Context) ([]DashboardItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []DashboardItem
	for id, ev := range m.evaluations {
		iv := m.interviews[id]
		c := m.candidates[iv.CandidateID]
		out = append(out, DashboardItem{
			InterviewID:    id,
			JobProfile:     iv.JobProfile,
			StartedAt:      iv.StartedAt,
			CompletedAt:    iv.CompletedAt,
			CandidateName:  c.Name,
			CandidateEmail: c.Email,
			Evaluation:     ev,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(*out[j].CompletedAt) })
	return out, nil
}

func (m *memRepo) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]InterviewSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []InterviewSummary
	for _, iv := range m.interviews {
		if iv.CandidateID != candidateID {
			continue
		}
		s := InterviewSummary{Interview: iv}
		if ev, ok := m.evaluations[iv.ID]; ok {
			s.Evaluation = &ev
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

func (m *memRepo) CountInterviews(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.interviews), nil
}

func (m *memRepo) CountByStatus(_ context.Context, status Status) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, iv := range m.interviews {
		if iv.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) CountStale(_ context.Context, startedBefore time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, iv := range m.interviews {
		if iv.Status == StatusInProgress && iv.StartedAt.Before(startedBefore) {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) AverageScore(_ context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.evaluations) == 0 {
		return 0, nil
	}
	var sum float64
	for _, ev := range m.evaluations {
		sum += ev.OverallScore
	}
	return sum / float64(len(m.evaluations)), nil
}

func (m *memRepo) ScoreDistribution(_ context.Context) ([]ScoreBucket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[float64]int{}
	for _, ev := range m.evaluations {
		counts[ev.OverallScore]++
	}
	out := make([]ScoreBucket, 0, len(counts))
	for score, n := range counts {
		out = append(out, ScoreBucket{OverallScore: score, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OverallScore < out[j].OverallScore })
	return out, nil
}

type mockPersona struct {
	OpeningLineFunc func(ctx context.Context) (string, error)
	NextLineFunc    func(ctx context.Context, history []chat.Turn) (string, error)
}

func (m *mockPersona) OpeningLine(ctx context.Context) (string, error) {
	if m.OpeningLineFunc == nil {
		return "Olá, minha internet está muito lenta!", nil
	}
	return m.OpeningLineFunc(ctx)
}

func (m *mockPersona) NextLine(ctx context.Context, history []chat.Turn) (string, error) {
	if m.NextLineFunc == nil {
		return "Entendi, e agora?", nil
	}
	return m.NextLineFunc(ctx, history)
}

type mockEvaluator struct {
	EvaluateFunc func(ctx context.Context, history []chat.Turn) (evaluation.Result, error)
}

func (m *mockEvaluator) Evaluate(ctx context.Context, history []chat.Turn) (evaluation.Result, error) {
	return m.EvaluateFunc(ctx, history)
}

type noopLocker struct{}

func (noopLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }

func sampleResult() evaluation.Result {
	return evaluation.Result{
		Scores: evaluation.Scores{
			Empathy:        evaluation.Score{Score: 7, Justification: "ok"},
			ProblemSolving: evaluation.Score{Score: 6, Justification: "ok"},
			Communication:  evaluation.Score{Score: 8, Justification: "ok"},
			ToneOfVoice:    evaluation.Score{Score: 7, Justification: "ok"},
			Efficiency:     evaluation.Score{Score: 9, Justification: "ok"},
		},
		Summary: evaluation.Summary{Strength: "clareza", DevelopmentArea: "empatia"},
	}
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
