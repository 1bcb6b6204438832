// Package favorites keeps each browsing session's favorite listings. Favorites are
// never written to the listing records themselves and expire with the session.
package favorites

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"agrisolve/internal/listingview"

	"github.com/redis/go-redis/v9"
)

// Store holds the favorite set of each session. Toggle is atomic per session so
// concurrent toggles never lose each other's changes.
type Store interface {
	Load(ctx context.Context, sessionID string) (listingview.FavoriteSet, error)
	Toggle(ctx context.Context, sessionID, listingID string) (bool, error)
}

// maxToggleAttempts bounds optimistic retries when another client changes the
// same session set mid-toggle.
const maxToggleAttempts = 5

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(sessionID string) string {
	return "favorites:" + sessionID
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (listingview.FavoriteSet, error) {
	ids, err := s.client.SMembers(ctx, key(sessionID)).Result()
	if err != nil {
		return listingview.FavoriteSet{}, fmt.Errorf("load favorites: %w", err)
	}
	return listingview.NewFavoriteSet(ids...), nil
}

// Toggle flips one listing inside a WATCH transaction and refreshes the expiry.
// It reports whether the listing is a favorite afterwards.
func (s *RedisStore) Toggle(ctx context.Context, sessionID, listingID string) (bool, error) {
	k := key(sessionID)
	var added bool
	txf := func(tx *redis.Tx) error {
		member, err := tx.SIsMember(ctx, k, listingID).Result()
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if member {
				pipe.SRem(ctx, k, listingID)
			} else {
				pipe.SAdd(ctx, k, listingID)
			}
			pipe.Expire(ctx, k, s.ttl)
			return nil
		})
		added = !member
		return err
	}

	for range maxToggleAttempts {
		err := s.client.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("toggle favorite: %w", err)
		}
		return added, nil
	}
	return false, fmt.Errorf("toggle favorite: %w", redis.TxFailedErr)
}

type memoryEntry struct {
	set     listingview.FavoriteSet
	expires time.Time
}

// MemoryStore is used when no Redis URL is configured. Entries expire after ttl.
type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	sets map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, sets: map[string]memoryEntry{}}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (listingview.FavoriteSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(sessionID), nil
}

// Toggle flips one listing under the store lock.
func (s *MemoryStore) Toggle(_ context.Context, sessionID, listingID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current(sessionID).Toggle(listingID)
	if next.Len() == 0 {
		delete(s.sets, sessionID)
	} else {
		s.sets[sessionID] = memoryEntry{set: next, expires: s.now().Add(s.ttl)}
	}
	return next.Has(listingID), nil
}

// current returns the live set for a session, dropping it once expired.
// Callers hold s.mu.
func (s *MemoryStore) current(sessionID string) listingview.FavoriteSet {
	e, ok := s.sets[sessionID]
	if !ok {
		return listingview.FavoriteSet{}
	}
	if s.now().After(e.expires) {
		delete(s.sets, sessionID)
		return listingview.FavoriteSet{}
	}
	return e.set
}
