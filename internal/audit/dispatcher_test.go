package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (s *recordingSink) Log(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("db down")
	}
	s.events = append(s.events, ev)
	return nil
}

func TestDispatcher_FlushesOnClose(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, zap.NewNop())
	teacherID := uuid.New()

	for i := 0; i < 10; i++ {
		d.Dispatch(Event{TeacherID: teacherID, Action: ActionBookingCreated})
	}
	d.Close()

	assert.Len(t, sink.events, 10)

	// closed dispatchers ignore new events
	d.Dispatch(Event{TeacherID: teacherID, Action: ActionVenueCreated})
	d.Close()
	assert.Len(t, sink.events, 10)
}

func TestDispatcher_SinkErrorDoesNotStopWorker(t *testing.T) {
	sink := &recordingSink{fail: true}
	d := NewDispatcher(sink, zap.NewNop())

	d.Dispatch(Event{Action: ActionProgramCreated})
	d.Close()

	assert.Empty(t, sink.events)
}

func TestToModel(t *testing.T) {
	id := uuid.New()
	row := ToModel(Event{
		TeacherID: id,
		ActorID:   Ref(id),
		Action:    ActionPaymentStatusUpdated,
		Entity:    EntityBooking,
		EntityID:  Ref(id),
		Metadata:  map[string]string{"payment_status": "PAID"},
	})

	assert.Equal(t, id, row.TeacherID)
	require.NotNil(t, row.EntityID)
	assert.JSONEq(t, `{"payment_status":"PAID"}`, row.Metadata)

	row = ToModel(Event{Metadata: func() {}})
	assert.Empty(t, row.Metadata)
}
