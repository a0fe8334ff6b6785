package interview

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (k *KeyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.slots)
}

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	k := NewKeyedMutex()
	unlock, err := k.Lock(context.Background(), "a")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		u, err := k.Lock(context.Background(), "a")
		if err == nil {
			close(acquired)
			u()
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first is held")
	case <-time.After(20 * time.Millisecond):
	}
	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second lock was never acquired")
	}
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	k := NewKeyedMutex()
	ua, err := k.Lock(context.Background(), "a")
	require.NoError(t, err)
	defer ua()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	ub, err := k.Lock(ctx, "b")
	require.NoError(t, err)
	ub()
}

func TestKeyedMutex_ContextCancel(t *testing.T) {
	k := NewKeyedMutex()
	unlock, err := k.Lock(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = k.Lock(ctx, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()
	assert.Zero(t, k.size(), "idle keys are dropped")
}
