// Package cache provides a tag-aware response cache. Entries hold the
// final serialized payload of a response and are labeled with tags at
// write time; invalidating a tag evicts every entry written under it.
package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TagStore is a keyed byte cache with group invalidation via tags.
// It is safe for concurrent use.
type TagStore struct {
	data *gocache.Cache

	mu   sync.Mutex
	tags map[string]map[string]struct{}
}

// New creates a TagStore whose entries expire after ttl.
func New(ttl time.Duration) *TagStore {
	return &TagStore{
		data: gocache.New(ttl, 2*ttl),
		tags: make(map[string]map[string]struct{}),
	}
}

// Get returns the payload stored under key, if present.
func (s *TagStore) Get(key string) ([]byte, bool) {
	v, found := s.data.Get(key)
	if !found {
		return nil, false
	}
	return v.([]byte), true
}

// Set stores the payload under key and records it under each tag.
func (s *TagStore) Set(key string, payload []byte, tags ...string) {
	s.data.SetDefault(key, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tag := range tags {
		keys, ok := s.tags[tag]
		if !ok {
			keys = make(map[string]struct{})
			s.tags[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

// Invalidate evicts every entry recorded under any of the given tags.
func (s *TagStore) Invalidate(tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tag := range tags {
		for key := range s.tags[tag] {
			s.data.Delete(key)
		}
		delete(s.tags, tag)
	}
}

// GetOrCompute returns the payload under key, computing and storing it on
// a miss. Concurrent misses on the same key may each run compute; the
// last write wins. No single-flight coalescing is attempted.
func (s *TagStore) GetOrCompute(key string, tags []string, compute func() ([]byte, error)) ([]byte, error) {
	if payload, found := s.Get(key); found {
		return payload, nil
	}

	payload, err := compute()
	if err != nil {
		return nil, err
	}

	s.Set(key, payload, tags...)
	return payload, nil
}
