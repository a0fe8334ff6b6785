package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	defaultLockTTL   = 3 * time.Minute
	defaultLockRetry = 50 * time.Millisecond
	lockPrefix       = "hr-trainer:lock:"
)

// releaseScript deletes the key only if it still holds our token.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker: межпроцессная блокировка интервью на SET NX PX.
// TTL должен покрывать самый долгий вызов модели вместе с ретраями.
type Locker struct {
	client goredis.UniversalClient
	ttl    time.Duration
	retry  time.Duration
	log    logrus.FieldLogger
}

func NewLocker(client goredis.UniversalClient, ttl time.Duration, log logrus.FieldLogger) *Locker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Locker{client: client, ttl: ttl, retry: defaultLockRetry, log: log}
}

func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	k := lockPrefix + key
	token := uuid.NewString()
	for {
		ok, err := l.client.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() { l.release(k, token) }, nil
		}
		t := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}

func (l *Locker) release(key, token string) {
	// the request context may already be cancelled; release anyway
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	if err != nil && !errors.Is(err, goredis.Nil) {
		l.log.WithError(err).WithField("key", key).Warn("redis lock release failed")
	}
}
