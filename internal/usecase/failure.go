// Package usecase holds helpers shared by the operation packages below it.
package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/cache"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
)

// StorageFailure logs an unexpected persistence error with its operation
// and returns the generic failure callers are allowed to see.
func StorageFailure(log *zap.Logger, op string, err error, fields ...zap.Field) error {
	log.Error("storage failure",
		append([]zap.Field{zap.String("op", op), zap.Error(err)}, fields...)...,
	)
	return httperr.ErrInternal("storage_failure", "Something went wrong. Please try again.")
}

// Settle passes business errors through and turns anything else into a
// logged StorageFailure.
func Settle(log *zap.Logger, op string, err error, fields ...zap.Field) error {
	if err == nil {
		return nil
	}
	if _, ok := httperr.KindOf(err); ok {
		return err
	}
	return StorageFailure(log, op, err, fields...)
}

// InvalidateCatalog drops the teacher's cached public pages. A cache error
// only costs freshness until the TTL expires, so it is logged and ignored.
func InvalidateCatalog(ctx context.Context, c cache.Cache, log *zap.Logger, teacherID uuid.UUID) {
	if err := c.InvalidateTeacher(ctx, teacherID); err != nil {
		log.Warn("catalog cache invalidation failed",
			zap.Stringer("teacher_id", teacherID),
			zap.Error(err),
		)
	}
}
