package cache

import (
	"encoding/json"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"swiftcart-backend/internal/logger"
)

// Service is a process-wide key to JSON-snapshot store. Entries never expire;
// they only disappear through Invalidate. Values are stored as serialized
// JSON so a cached response is decoupled from the structs that produced it.
type Service struct {
	store *gocache.Cache
	group singleflight.Group
}

func NewService() *Service {
	return &Service{store: gocache.New(gocache.NoExpiration, 0)}
}

// TryGet looks the key up and unmarshals the snapshot into dest in one step.
// A missing key, a concurrently deleted entry or an undecodable snapshot all
// report a miss; the caller falls through to recomputation.
func (s *Service) TryGet(key string, dest interface{}) bool {
	raw, found := s.store.Get(key)
	if !found {
		return false
	}
	data, ok := raw.([]byte)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn("cache: dropping undecodable snapshot for %q: %v", key, err)
		s.store.Delete(key)
		return false
	}
	return true
}

// SetJSON serializes v and stores it under key. Concurrent writers race
// last-write-wins, which is fine since a snapshot for a given underlying
// state is idempotent. A marshal failure is logged and the entry is left
// absent rather than poisoned.
func (s *Service) SetJSON(key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("cache: failed to serialize snapshot for "+key, err)
		return
	}
	s.store.Set(key, data, gocache.NoExpiration)
}

func (s *Service) Delete(keys ...string) {
	for _, key := range keys {
		s.store.Delete(key)
	}
}

// Do runs fn at most once per key among concurrent callers and hands every
// caller the same result. Used by the dashboard handlers where a miss
// triggers an expensive recomputation.
func (s *Service) Do(key string, fn func() (interface{}, error)) (interface{}, error) {
	v, err, _ := s.group.Do(key, fn)
	return v, err
}
