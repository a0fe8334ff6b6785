package llm

import (
	"context"
	"errors"
	"fmt"
)

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// It intentionally hides concrete providers to preserve dependency direction.
type ChatModel interface {
	Send(ctx context.Context, messages []Message) (string, error)
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a chat completions request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

var (
	// ErrTimeout marks an attempt that exceeded its per-attempt deadline.
	ErrTimeout = errors.New("llm: request timed out")
	// ErrInvalidResponseFormat marks a 2xx reply without the expected message envelope.
	ErrInvalidResponseFormat = errors.New("llm: invalid response format")
	// ErrNotConfigured: the client cannot send anything (e.g. no API key).
	ErrNotConfigured = errors.New("llm: client not configured")
	// ErrGeneration is matched by every *GenerationError.
	ErrGeneration = errors.New("llm: generation failed")
)

// StatusError is returned for non-2xx replies from the completions endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm http %d: %s", e.Code, e.Body)
}

// GenerationError is what callers above the retry shell see. Message is safe to show
// to end users; Err keeps the underlying cause for logs and errors.Is checks.
type GenerationError struct {
	Message string
	Err     error
}

func NewGenerationError(message string, cause error) *GenerationError {
	return &GenerationError{Message: message, Err: cause}
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *GenerationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrGeneration}
	}
	return []error{ErrGeneration, e.Err}
}
