package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type AuditStore struct {
	s *Store
}

func NewAuditStore(s *Store) *AuditStore {
	return &AuditStore{s: s}
}

func (a *AuditStore) Log(_ context.Context, ev audit.Event) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	row := audit.ToModel(ev)
	newID(&row.ID)
	row.CreatedAt = a.s.tick()
	a.s.auditLogs = append(a.s.auditLogs, *row)
	return nil
}

func (a *AuditStore) List(_ context.Context, teacherID uuid.UUID, f audit.Filter) ([]models.AuditLog, int64, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	if a.s.failure != nil {
		return nil, 0, a.s.failure
	}

	var matched []models.AuditLog
	for _, l := range a.s.auditLogs {
		switch {
		case l.TeacherID != teacherID:
		case f.Action != "" && l.Action != f.Action:
		case f.Entity != "" && l.Entity != f.Entity:
		case f.From != nil && l.CreatedAt.Before(*f.From):
		case f.To != nil && !l.CreatedAt.Before(*f.To):
		default:
			matched = append(matched, l)
		}
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := min((f.Page-1)*f.Limit, len(matched))
	end := min(start+f.Limit, len(matched))
	return matched[start:end], total, nil
}

var _ audit.Store = (*AuditStore)(nil)
