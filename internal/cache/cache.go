// Package cache stores rendered public catalog responses per teacher.
package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Cache is keyed by teacher so every mutation of a teacher's programs or
// bookings can drop all of that teacher's entries at once.
type Cache interface {
	GetJSON(ctx context.Context, teacherID uuid.UUID, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, teacherID uuid.UUID, key string, v any, ttl time.Duration) error
	InvalidateTeacher(ctx context.Context, teacherID uuid.UUID) error
}

func teacherPrefix(teacherID uuid.UUID) string {
	return "catalog:" + teacherID.String() + ":"
}

// Noop never hits. Used when REDIS_URL is empty.
type Noop struct{}

func (Noop) GetJSON(context.Context, uuid.UUID, string, any) (bool, error) { return false, nil }

func (Noop) SetJSON(context.Context, uuid.UUID, string, any, time.Duration) error { return nil }

func (Noop) InvalidateTeacher(context.Context, uuid.UUID) error { return nil }

var _ Cache = Noop{}
