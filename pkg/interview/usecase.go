package interview

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/artem13815/hr-trainer/pkg/chat"
)

// меньше двух реплик оценивать нечего
const minTurnsToEvaluate = 2

// UseCase — жизненный цикл тренировочного интервью.
type UseCase interface {
	Start(ctx context.Context, name, email, jobProfile string) (StartResult, error)
	PostMessage(ctx context.Context, id uuid.UUID, text string) (string, error)
	Get(ctx context.Context, id uuid.UUID) (Details, error)
	Complete(ctx context.Context, id uuid.UUID) (CompleteResult, error)
}

type service struct {
	repo      Repository
	persona   PersonaGenerator
	evaluator Evaluator
	locker    Locker
	modelName string
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewService(repo Repository, persona PersonaGenerator, evaluator Evaluator, locker Locker, modelName string, log logrus.FieldLogger) UseCase {
	if locker == nil {
		locker = NewKeyedMutex()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &service{
		repo:      repo,
		persona:   persona,
		evaluator: evaluator,
		locker:    locker,
		modelName: modelName,
		log:       log.WithField("component", "interview"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Start(ctx context.Context, name, email, jobProfile string) (StartResult, error) {
	now := s.now()
	cand, err := s.repo.FindOrCreateCandidate(ctx, Candidate{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		CreatedAt: now,
	})
	if err != nil {
		return StartResult{}, err
	}

	opening, err := s.persona.OpeningLine(ctx)
	if err != nil {
		return StartResult{}, err
	}

	iv := Interview{
		ID:          uuid.New(),
		CandidateID: cand.ID,
		JobProfile:  strings.TrimSpace(jobProfile),
		Status:      StatusInProgress,
		ChatHistory: []chat.Turn{chat.Assistant(opening)},
		StartedAt:   now,
	}
	if err := s.repo.CreateInterview(ctx, iv); err != nil {
		return StartResult{}, err
	}
	s.log.WithFields(logrus.Fields{"interview_id": iv.ID, "candidate_id": cand.ID}).Info("interview started")

	return StartResult{InterviewID: iv.ID, InitialMessage: opening, Candidate: cand}, nil
}

// PostMessage добавляет реплику кандидата и ответ персонажа. При ошибке генерации
// интервью не меняется.
func (s *service) PostMessage(ctx context.Context, id uuid.UUID, text string) (string, error) {
	unlock, err := s.locker.Lock(ctx, id.String())
	if err != nil {
		return "", err
	}
	defer unlock()

	iv, err := s.repo.GetInterview(ctx, id)
	if err != nil {
		return "", err
	}
	if iv.Status != StatusInProgress {
		return "", ErrAlreadyCompleted
	}

	userTurn := chat.User(text)
	history := append(slices.Clone(iv.ChatHistory), userTurn)
	reply, err := s.persona.NextLine(ctx, history)
	if err != nil {
		return "", err
	}

	if err := s.repo.AppendTurns(ctx, id, userTurn, chat.Assistant(reply)); err != nil {
		return "", err
	}
	s.log.WithFields(logrus.Fields{"interview_id": id, "turns": len(history) + 1}).Debug("message processed")
	return reply, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (Details, error) {
	iv, err := s.repo.GetInterview(ctx, id)
	if err != nil {
		return Details{}, err
	}
	cand, err := s.repo.GetCandidate(ctx, iv.CandidateID)
	if err != nil {
		return Details{}, err
	}
	ev, err := s.optionalEvaluation(ctx, id)
	if err != nil {
		return Details{}, err
	}
	return Details{Interview: iv, Candidate: cand, Evaluation: ev}, nil
}

// Complete оценивает интервью и атомарно переводит его в EVALUATED. Проигравший
// в гонке за завершение получает ErrAlreadyEvaluated и ничего не пишет.
func (s *service) Complete(ctx context.Context, id uuid.UUID) (CompleteResult, error) {
	unlock, err := s.locker.Lock(ctx, id.String())
	if err != nil {
		return CompleteResult{}, err
	}
	defer unlock()

	iv, err := s.repo.GetInterview(ctx, id)
	if err != nil {
		return CompleteResult{}, err
	}
	if iv.Status == StatusEvaluated {
		return CompleteResult{}, ErrAlreadyEvaluated
	}
	if len(iv.ChatHistory) < minTurnsToEvaluate {
		return CompleteResult{}, ErrTooShort
	}

	res, err := s.evaluator.Evaluate(ctx, iv.ChatHistory)
	if err != nil {
		return CompleteResult{}, err
	}

	now := s.now()
	ev := Evaluation{
		ID:           uuid.New(),
		InterviewID:  id,
		Scores:       res.Scores,
		Summary:      res.Summary,
		OverallScore: OverallScore(res.Scores),
		Model:        s.modelName,
		CreatedAt:    now,
	}
	if err := s.repo.Complete(ctx, ev, now); err != nil {
		return CompleteResult{}, err
	}
	s.log.WithFields(logrus.Fields{"interview_id": id, "overall_score": ev.OverallScore}).Info("interview evaluated")

	return CompleteResult{Evaluation: ev, OverallScore: ev.OverallScore}, nil
}

func (s *service) optionalEvaluation(ctx context.Context, interviewID uuid.UUID) (*Evaluation, error) {
	ev, err := s.repo.GetEvaluation(ctx, interviewID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}
