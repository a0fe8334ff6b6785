package interview

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/hr-trainer/pkg/chat"
	"github.com/artem13815/hr-trainer/pkg/evaluation"
)

// Status — состояние тренировочного интервью. Переход возможен только один:
// IN_PROGRESS -> EVALUATED.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusEvaluated  Status = "EVALUATED"
)

// Candidate идентифицируется по email (find-or-create).
type Candidate struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Interview хранит историю чата; пока статус IN_PROGRESS она только дополняется.
type Interview struct {
	ID          uuid.UUID   `json:"id"`
	CandidateID uuid.UUID   `json:"candidateId"`
	JobProfile  string      `json:"jobProfile"`
	Status      Status      `json:"status"`
	ChatHistory []chat.Turn `json:"chatHistory"`
	StartedAt   time.Time   `json:"startedAt"`
	CompletedAt *time.Time  `json:"completedAt"`
}

// Evaluation создаётся ровно один раз, вместе с переходом в EVALUATED.
type Evaluation struct {
	ID           uuid.UUID          `json:"id"`
	InterviewID  uuid.UUID          `json:"interviewId"`
	Scores       evaluation.Scores  `json:"scores"`
	Summary      evaluation.Summary `json:"summary"`
	OverallScore float64            `json:"overallScore"`
	Model        string             `json:"model"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// Details — интервью вместе с кандидатом и (если есть) оценкой.
type Details struct {
	Interview
	Candidate  Candidate   `json:"candidate"`
	Evaluation *Evaluation `json:"evaluation"`
}

type StartResult struct {
	InterviewID    uuid.UUID `json:"interviewId"`
	InitialMessage string    `json:"initialMessage"`
	Candidate      Candidate `json:"candidate"`
}

type CompleteResult struct {
	Evaluation   Evaluation `json:"evaluation"`
	OverallScore float64    `json:"overallScore"`
}

// DashboardItem — завершённое интервью для панели HR.
type DashboardItem struct {
	InterviewID    uuid.UUID  `json:"id"`
	JobProfile     string     `json:"jobProfile"`
	StartedAt      time.Time  `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt"`
	CandidateName  string     `json:"candidateName"`
	CandidateEmail string     `json:"candidateEmail"`
	Evaluation     Evaluation `json:"evaluation"`
}

type ScoreBucket struct {
	OverallScore float64 `json:"overallScore"`
	Count        int     `json:"count"`
}

type Statistics struct {
	TotalInterviews     int           `json:"totalInterviews"`
	CompletedInterviews int           `json:"completedInterviews"`
	AverageScore        float64       `json:"averageScore"`
	ScoreDistribution   []ScoreBucket `json:"scoreDistribution"`
	StaleInterviews     int           `json:"staleInterviews"`
}

// InterviewSummary: строка истории кандидата.
type InterviewSummary struct {
	Interview
	Evaluation *Evaluation `json:"evaluation"`
}

type CandidateProfile struct {
	Candidate
	Interviews []InterviewSummary `json:"interviews"`
}

type EvaluationReport struct {
	InterviewID uuid.UUID  `json:"interviewId"`
	Candidate   Candidate  `json:"candidate"`
	JobProfile  string     `json:"jobProfile"`
	CompletedAt *time.Time `json:"completedAt"`
	Evaluation  Evaluation `json:"evaluation"`
}

// Repository is the storage port for candidates, interviews and evaluations.
type Repository interface {
	FindOrCreateCandidate(ctx context.Context, c Candidate) (Candidate, error)
	GetCandidate(ctx context.Context, id uuid.UUID) (Candidate, error)
	CreateInterview(ctx context.Context, iv Interview) error
	GetInterview(ctx context.Context, id uuid.UUID) (Interview, error)
	// AppendTurns атомарно дописывает реплики; ErrAlreadyCompleted, если интервью уже оценено.
	AppendTurns(ctx context.Context, id uuid.UUID, turns ...chat.Turn) error
	GetEvaluation(ctx context.Context, interviewID uuid.UUID) (Evaluation, error)
	// Complete в одной транзакции переводит интервью в EVALUATED и сохраняет оценку.
	Complete(ctx context.Context, ev Evaluation, completedAt time.Time) error

	ListEvaluated(ctx context.Context) ([]DashboardItem, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]InterviewSummary, error)
	CountInterviews(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status Status) (int, error)
	CountStale(ctx context.Context, startedBefore time.Time) (int, error)
	AverageScore(ctx context.Context) (float64, error)
	ScoreDistribution(ctx context.Context) ([]ScoreBucket, error)
}

// PersonaGenerator is satisfied by *persona.Generator.
type PersonaGenerator interface {
	OpeningLine(ctx context.Context) (string, error)
	NextLine(ctx context.Context, history []chat.Turn) (string, error)
}

// Evaluator is satisfied by *evaluation.Generator.
type Evaluator interface {
	Evaluate(ctx context.Context, history []chat.Turn) (evaluation.Result, error)
}
