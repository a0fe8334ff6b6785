package training

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UseCase — управление библиотекой тренировочных промптов.
type UseCase interface {
	ListPrompts(ctx context.Context, f Filter) ([]Prompt, error)
	CreatePrompt(ctx context.Context, p Prompt) (Prompt, error)
	UpdatePrompt(ctx context.Context, id uuid.UUID, patch PromptPatch) (Prompt, error)
	DeletePrompt(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (Stats, error)
	CreateSession(ctx context.Context, s Session) (Session, error)
	ListSessions(ctx context.Context) ([]Session, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) ListPrompts(ctx context.Context, f Filter) ([]Prompt, error) {
	list, err := s.repo.ListPrompts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Prompt, 0, len(list))
	for _, p := range list {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *service) CreatePrompt(ctx context.Context, p Prompt) (Prompt, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Content = strings.TrimSpace(p.Content)
	if p.Name == "" || p.Content == "" || p.Category == "" || p.PromptType == "" {
		return Prompt{}, ErrValidation("name, category, promptType and content are required")
	}
	applyDefaults(&p)
	if err := validate(p); err != nil {
		return Prompt{}, err
	}
	now := s.now()
	p.ID = uuid.New()
	p.IsActive = true
	p.CreatedAt, p.UpdatedAt = now, now
	if err := s.repo.CreatePrompt(ctx, p); err != nil {
		return Prompt{}, err
	}
	return p, nil
}

func (s *service) UpdatePrompt(ctx context.Context, id uuid.UUID, patch PromptPatch) (Prompt, error) {
	p, err := s.repo.GetPrompt(ctx, id)
	if err != nil {
		return Prompt{}, err
	}
	patch.apply(&p)
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Content) == "" {
		return Prompt{}, ErrValidation("name and content must not be empty")
	}
	if err := validate(p); err != nil {
		return Prompt{}, err
	}
	p.UpdatedAt = s.now()
	if err := s.repo.UpdatePrompt(ctx, p); err != nil {
		return Prompt{}, err
	}
	return p, nil
}

func (s *service) DeletePrompt(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePrompt(ctx, id)
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

func (s *service) CreateSession(ctx context.Context, sess Session) (Session, error) {
	sess.SessionName = strings.TrimSpace(sess.SessionName)
	if sess.SessionName == "" {
		return Session{}, ErrValidation("sessionName is required")
	}
	if sess.PromptIDs == nil {
		sess.PromptIDs = []uuid.UUID{}
	}
	sess.ID = uuid.New()
	sess.Status = SessionPending
	sess.StartedAt = s.now()
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *service) ListSessions(ctx context.Context) ([]Session, error) {
	list, err := s.repo.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Session{}
	}
	return list, nil
}

func applyDefaults(p *Prompt) {
	if p.Language == "" {
		p.Language = "pt-BR"
	}
	if p.Behavior == "" {
		p.Behavior = BehaviorProfessional
	}
	if p.Tone == "" {
		p.Tone = ToneNeutral
	}
	if p.Difficulty == "" {
		p.Difficulty = DifficultyMedium
	}
	if p.Priority == 0 {
		p.Priority = 1
	}
	if p.Keywords == nil {
		p.Keywords = []string{}
	}
}

func validate(p Prompt) error {
	switch {
	case !slices.Contains([]Category{CategoryInterview, CategoryCustomerService, CategorySales, CategoryTechnical}, p.Category):
		return ErrValidation("invalid category: " + string(p.Category))
	case !slices.Contains([]PromptType{PromptInitialMessage, PromptFollowUp, PromptEvaluation, PromptCustom}, p.PromptType):
		return ErrValidation("invalid promptType: " + string(p.PromptType))
	case !slices.Contains(Languages, p.Language):
		return ErrValidation("invalid language: " + p.Language)
	case !slices.Contains([]Behavior{BehaviorProfessional, BehaviorFriendly, BehaviorFormal, BehaviorCasual}, p.Behavior):
		return ErrValidation("invalid behavior: " + string(p.Behavior))
	case !slices.Contains([]Tone{ToneNeutral, TonePositive, ToneEncouraging, ToneChallenging}, p.Tone):
		return ErrValidation("invalid tone: " + string(p.Tone))
	case !slices.Contains([]Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert}, p.Difficulty):
		return ErrValidation("invalid difficulty: " + string(p.Difficulty))
	case p.TimeLimit != nil && *p.TimeLimit <= 0:
		return ErrValidation("timeLimit must be positive")
	}
	return nil
}

func (pp PromptPatch) apply(p *Prompt) {
	if pp.Name != nil {
		p.Name = strings.TrimSpace(*pp.Name)
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.PromptType != nil {
		p.PromptType = *pp.PromptType
	}
	if pp.Content != nil {
		p.Content = strings.TrimSpace(*pp.Content)
	}
	if pp.Language != nil {
		p.Language = *pp.Language
	}
	if pp.Behavior != nil {
		p.Behavior = *pp.Behavior
	}
	if pp.Tone != nil {
		p.Tone = *pp.Tone
	}
	if pp.Context != nil {
		p.Context = *pp.Context
	}
	if pp.ExpectedResponse != nil {
		p.ExpectedResponse = *pp.ExpectedResponse
	}
	if pp.EvaluationCriteria != nil {
		p.EvaluationCriteria = *pp.EvaluationCriteria
	}
	if pp.Difficulty != nil {
		p.Difficulty = *pp.Difficulty
	}
	if pp.TimeLimit != nil {
		p.TimeLimit = pp.TimeLimit
	}
	if pp.Keywords != nil {
		p.Keywords = pp.Keywords
	}
	if pp.Priority != nil {
		p.Priority = *pp.Priority
	}
	if pp.IsActive != nil {
		p.IsActive = *pp.IsActive
	}
}
