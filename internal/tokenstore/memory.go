package tokenstore

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Memory is an in-process Store. Values expire after ttl; ttl <= 0 keeps them forever.
type Memory struct {
	c   *cache.Cache
	ttl time.Duration
}

// NewMemory creates an in-memory store.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &Memory{
		c:   cache.New(ttl, 10*time.Minute),
		ttl: ttl,
	}
}

func (m *Memory) Get(key string) string {
	v, found := m.c.Get(key)
	if !found {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (m *Memory) Set(key, value string) error {
	m.c.Set(key, value, m.ttl)
	return nil
}

func (m *Memory) Delete(key string) error {
	m.c.Delete(key)
	return nil
}
