package training

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryInterview       Category = "INTERVIEW"
	CategoryCustomerService Category = "CUSTOMER_SERVICE"
	CategorySales           Category = "SALES"
	CategoryTechnical       Category = "TECHNICAL"
)

type PromptType string

const (
	PromptInitialMessage PromptType = "INITIAL_MESSAGE"
	PromptFollowUp       PromptType = "FOLLOW_UP"
	PromptEvaluation     PromptType = "EVALUATION"
	PromptCustom         PromptType = "CUSTOM"
)

type Behavior string

const (
	BehaviorProfessional Behavior = "PROFESSIONAL"
	BehaviorFriendly     Behavior = "FRIENDLY"
	BehaviorFormal       Behavior = "FORMAL"
	BehaviorCasual       Behavior = "CASUAL"
)

type Tone string

const (
	ToneNeutral     Tone = "NEUTRAL"
	TonePositive    Tone = "POSITIVE"
	ToneEncouraging Tone = "ENCOURAGING"
	ToneChallenging Tone = "CHALLENGING"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
	DifficultyExpert Difficulty = "EXPERT"
)

var Languages = []string{"pt-BR", "en-US", "es-ES"}

// Prompt — шаблон сообщения для тренировок.
type Prompt struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Category           Category   `json:"category"`
	PromptType         PromptType `json:"promptType"`
	Content            string     `json:"content"`
	Language           string     `json:"language"`
	Behavior           Behavior   `json:"behavior"`
	Tone               Tone       `json:"tone"`
	Context            string     `json:"context"`
	ExpectedResponse   string     `json:"expectedResponse"`
	EvaluationCriteria string     `json:"evaluationCriteria"`
	Difficulty         Difficulty `json:"difficulty"`
	TimeLimit          *int       `json:"timeLimit"`
	Keywords           []string   `json:"keywords"`
	Priority           int        `json:"priority"`
	IsActive           bool       `json:"isActive"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// PromptPatch: частичное обновление, nil означает «не менять».
type PromptPatch struct {
	Name               *string     `json:"name"`
	Category           *Category   `json:"category"`
	PromptType         *PromptType `json:"promptType"`
	Content            *string     `json:"content"`
	Language           *string     `json:"language"`
	Behavior           *Behavior   `json:"behavior"`
	Tone               *Tone       `json:"tone"`
	Context            *string     `json:"context"`
	ExpectedResponse   *string     `json:"expectedResponse"`
	EvaluationCriteria *string     `json:"evaluationCriteria"`
	Difficulty         *Difficulty `json:"difficulty"`
	TimeLimit          *int        `json:"timeLimit"`
	Keywords           []string    `json:"keywords"`
	Priority           *int        `json:"priority"`
	IsActive           *bool       `json:"isActive"`
}

const SessionPending = "PENDING"

type Session struct {
	ID          uuid.UUID   `json:"id"`
	SessionName string      `json:"sessionName"`
	Description string      `json:"description"`
	PromptIDs   []uuid.UUID `json:"prompts"`
	Status      string      `json:"status"`
	StartedAt   time.Time   `json:"startedAt"`
	CompletedAt *time.Time  `json:"completedAt"`
}

type Stats struct {
	ActivePrompts    int        `json:"activePrompts"`
	TrainingSessions int        `json:"trainingSessions"`
	Categories       int        `json:"categories"`
	LastUpdate       *time.Time `json:"lastUpdate"`
}

var ErrNotFound = errors.New("training prompt not found")

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// Repository хранит промпты и сессии.
type Repository interface {
	ListPrompts(ctx context.Context) ([]Prompt, error)
	GetPrompt(ctx context.Context, id uuid.UUID) (Prompt, error)
	CreatePrompt(ctx context.Context, p Prompt) error
	UpdatePrompt(ctx context.Context, p Prompt) error
	DeletePrompt(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (Stats, error)
	CreateSession(ctx context.Context, s Session) error
	ListSessions(ctx context.Context) ([]Session, error)
}
