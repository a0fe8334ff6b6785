package interview

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/hr-trainer/pkg/chat"
	"github.com/artem13815/hr-trainer/pkg/evaluation"
)

func seedEvaluated(t *testing.T, repo *memRepo, email string, scores [5]float64) (Candidate, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	svc := NewService(repo, &mockPersona{}, &mockEvaluator{EvaluateFunc: func(context.Context, []chat.Turn) (evaluation.Result, error) {
		r := sampleResult()
		r.Scores.Empathy.Score = scores[0]
		r.Scores.ProblemSolving.Score = scores[1]
		r.Scores.Communication.Score = scores[2]
		r.Scores.ToneOfVoice.Score = scores[3]
		r.Scores.Efficiency.Score = scores[4]
		return r, nil
	}}, nil, "test/model", quietLogger())

	res, err := svc.Start(ctx, "Cand", email, "Suporte")
	require.NoError(t, err)
	_, err = svc.PostMessage(ctx, res.InterviewID, "oi")
	require.NoError(t, err)
	_, err = svc.Complete(ctx, res.InterviewID)
	require.NoError(t, err)
	return res.Candidate, res.InterviewID
}

func TestStatistics(t *testing.T) {
	repo := newMemRepo()
	seedEvaluated(t, repo, "a@example.com", [5]float64{8, 8, 8, 8, 8})
	seedEvaluated(t, repo, "b@example.com", [5]float64{6, 6, 6, 6, 6})
	seedEvaluated(t, repo, "c@example.com", [5]float64{6, 6, 6, 6, 6})

	// one open interview started long ago, one fresh
	old := Interview{ID: uuid.New(), CandidateID: uuid.New(), Status: StatusInProgress, StartedAt: time.Now().Add(-48 * time.Hour)}
	fresh := Interview{ID: uuid.New(), CandidateID: uuid.New(), Status: StatusInProgress, StartedAt: time.Now()}
	require.NoError(t, repo.CreateInterview(context.Background(), old))
	require.NoError(t, repo.CreateInterview(context.Background(), fresh))

	st, err := NewReporting(repo, 24*time.Hour).Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, st.TotalInterviews)
	assert.Equal(t, 3, st.CompletedInterviews)
	assert.InDelta(t, 20.0/3, st.AverageScore, 1e-9)
	assert.Equal(t, []ScoreBucket{{OverallScore: 6, Count: 2}, {OverallScore: 8, Count: 1}}, st.ScoreDistribution)
	assert.Equal(t, 1, st.StaleInterviews)
}

func TestStatistics_Empty(t *testing.T) {
	st, err := NewReporting(newMemRepo(), 0).Statistics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.AverageScore)
	assert.NotNil(t, st.ScoreDistribution)
	assert.Empty(t, st.ScoreDistribution)
}

func TestDashboard_ListsOnlyEvaluated(t *testing.T) {
	repo := newMemRepo()
	_, id := seedEvaluated(t, repo, "a@example.com", [5]float64{7, 6, 8, 7, 9})
	require.NoError(t, repo.CreateInterview(context.Background(), Interview{ID: uuid.New(), Status: StatusInProgress}))

	items, err := NewReporting(repo, 0).Dashboard(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].InterviewID)
	assert.Equal(t, "a@example.com", items[0].CandidateEmail)
	assert.Equal(t, 7.4, items[0].Evaluation.OverallScore)
}

func TestInterviewDetailsAndReport(t *testing.T) {
	repo := newMemRepo()
	cand, id := seedEvaluated(t, repo, "a@example.com", [5]float64{7, 6, 8, 7, 9})
	r := NewReporting(repo, 0)

	d, err := r.InterviewDetails(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, d.Evaluation)
	assert.Equal(t, cand.ID, d.Candidate.ID)

	rep, err := r.EvaluationReport(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Suporte", rep.JobProfile)
	assert.Equal(t, 7.4, rep.Evaluation.OverallScore)

	open := Interview{ID: uuid.New(), CandidateID: cand.ID, Status: StatusInProgress, StartedAt: time.Now()}
	require.NoError(t, repo.CreateInterview(context.Background(), open))
	_, err = r.InterviewDetails(context.Background(), open.ID)
	assert.ErrorIs(t, err, ErrNotEvaluated)
	_, err = r.EvaluationReport(context.Background(), open.ID)
	assert.ErrorIs(t, err, ErrNotEvaluated)

	_, err = r.InterviewDetails(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCandidateProfile(t *testing.T) {
	repo := newMemRepo()
	cand, _ := seedEvaluated(t, repo, "a@example.com", [5]float64{7, 6, 8, 7, 9})
	r := NewReporting(repo, 0)

	p, err := r.CandidateProfile(context.Background(), cand.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", p.Email)
	require.Len(t, p.Interviews, 1)
	assert.NotNil(t, p.Interviews[0].Evaluation)

	_, err = r.CandidateProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}
