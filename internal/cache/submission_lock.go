package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DefaultLockTTL bounds how long a crashed request can hold a submission lock.
const DefaultLockTTL = 10 * time.Second

// Deletes the key only if it still holds our token, so an expired lock re-acquired by another
// request is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SubmissionLock serialises concurrent submissions of the same quiz by the same user.
type SubmissionLock struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewSubmissionLock returns a lock backed by client, or a lock that always succeeds when client is nil.
func NewSubmissionLock(client *redis.Client) *SubmissionLock {
	l := &SubmissionLock{ttl: DefaultLockTTL}
	if client != nil {
		l.client = client
	}
	return l
}

// SubmissionLockKey is the Redis key guarding one user's submission of one quiz.
func SubmissionLockKey(userID, quizID uint) string {
	return fmt.Sprintf("quiz-submission:%d:%d", userID, quizID)
}

// Acquire tries to take the lock. With no Redis configured it always succeeds. The returned
// release func is never nil.
func (l *SubmissionLock) Acquire(ctx context.Context, userID, quizID uint) (func(), bool, error) {
	noop := func() {}
	if l.client == nil {
		return noop, true, nil
	}

	key := SubmissionLockKey(userID, quizID)
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return noop, false, fmt.Errorf("failed to acquire submission lock %s: %w", key, err)
	}
	if !ok {
		return noop, false, nil
	}

	release := func() {
		// The request context may already be cancelled; release on a fresh one.
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.client, []string{key}, token).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to release submission lock")
		}
	}
	return release, true, nil
}
