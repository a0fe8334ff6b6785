package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                { return s.name }
func (s stubChecker) Check(context.Context) error { return s.err }

func TestReady(t *testing.T) {
	down := errors.New("connection refused")

	assert.NoError(t, NewService(stubChecker{name: "postgres"}, nil).Ready(context.Background()))

	err := NewService(stubChecker{name: "postgres"}, stubChecker{name: "redis", err: down}).Ready(context.Background())
	assert.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "redis")
}

func TestReport(t *testing.T) {
	svc := NewService(stubChecker{name: "postgres"}, stubChecker{name: "redis", err: errors.New("timeout")})
	assert.Equal(t, map[string]string{"postgres": "ok", "redis": "timeout"}, svc.Report(context.Background()))
}
