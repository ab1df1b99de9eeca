package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	raw     []byte
	expires time.Time
}

// Memory is an in-process Cache with the same JSON round trip as Redis.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *Memory) GetJSON(_ context.Context, teacherID uuid.UUID, key string, dst any) (bool, error) {
	m.mu.Lock()
	e, ok := m.entries[teacherPrefix(teacherID)+key]
	if ok && !e.expires.IsZero() && m.now().After(e.expires) {
		delete(m.entries, teacherPrefix(teacherID)+key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(e.raw, dst)
}

func (m *Memory) SetJSON(_ context.Context, teacherID uuid.UUID, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	e := entry{raw: raw}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[teacherPrefix(teacherID)+key] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory) InvalidateTeacher(_ context.Context, teacherID uuid.UUID) error {
	prefix := teacherPrefix(teacherID)

	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
	return nil
}

// Len is the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

var _ Cache = (*Memory)(nil)
