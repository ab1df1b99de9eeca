package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listing struct {
	Name string `json:"name"`
	Left *int   `json:"left"`
}

func TestMemory_RoundTripAndInvalidate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	a, b := uuid.New(), uuid.New()
	left := 3

	require.NoError(t, m.SetJSON(ctx, a, "programs", []listing{{Name: "Flow", Left: &left}}, time.Minute))
	require.NoError(t, m.SetJSON(ctx, a, "program:flow", listing{Name: "Flow"}, time.Minute))
	require.NoError(t, m.SetJSON(ctx, b, "programs", []listing{}, time.Minute))

	var got []listing
	hit, err := m.GetJSON(ctx, a, "programs", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	require.Len(t, got, 1)
	assert.Equal(t, 3, *got[0].Left)

	require.NoError(t, m.InvalidateTeacher(ctx, a))
	assert.Equal(t, 1, m.Len())

	hit, err = m.GetJSON(ctx, a, "programs", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	var other []listing
	hit, _ = m.GetJSON(ctx, b, "programs", &other)
	assert.True(t, hit)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	id := uuid.New()

	require.NoError(t, m.SetJSON(ctx, id, "programs", listing{Name: "x"}, time.Minute))
	now = now.Add(2 * time.Minute)

	var got listing
	hit, err := m.GetJSON(ctx, id, "programs", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNoop(t *testing.T) {
	var got listing
	hit, err := Noop{}.GetJSON(context.Background(), uuid.New(), "k", &got)
	assert.NoError(t, err)
	assert.False(t, hit)
}
