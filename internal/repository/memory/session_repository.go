package memory

import (
	"context"
	"encoding/json"
	"time"

	"shopping-assistant-be/pkg/store"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "assistant:session:"

// SessionRepository keeps live conversation state in process memory, with an
// optional Redis write-through so a session survives a restart. Redis
// failures are swallowed: the in-process cache is the source of truth for a
// running instance.
type SessionRepository struct {
	cache *cache.Cache
	rdb   *redis.Client
	ttl   time.Duration
}

// NewSessionRepository creates a repository with a default expiration of one
// hour, purging expired sessions every 10 minutes. rdb may be nil to run
// memory-only.
func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
		rdb:   rdb,
		ttl:   1 * time.Hour,
	}
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
	if r.rdb == nil {
		return
	}
	if data, err := json.Marshal(session); err == nil {
		r.rdb.Set(ctx, redisKeyPrefix+session.ID, data, r.ttl)
	}
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	if r.rdb != nil {
		data, err := r.rdb.Get(ctx, redisKeyPrefix+sessionID).Bytes()
		if err == nil {
			var session store.Session
			if err := json.Unmarshal(data, &session); err == nil {
				r.cache.Set(sessionID, &session, cache.DefaultExpiration)
				return &session, true
			}
		}
	}
	return nil, false
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) {
	r.cache.Delete(sessionID)
	if r.rdb != nil {
		r.rdb.Del(ctx, redisKeyPrefix+sessionID)
	}
}
