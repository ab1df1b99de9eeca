package program

import (
	"fmt"

	"github.com/BruksfildServices01/shala-api/internal/httperr"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

var transitions = map[Status][]Status{
	StatusDraft:     {StatusPublished},
	StatusPublished: {StatusCancelled, StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

func ParseStatus(v string) (Status, error) {
	if _, ok := transitions[Status(v)]; ok {
		return Status(v), nil
	}
	return "", httperr.ErrValidation("status", "status must be one of DRAFT PUBLISHED CANCELLED COMPLETED")
}

func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func ValidateTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return httperr.ErrConflict(
			"invalid_status_transition",
			fmt.Sprintf("Cannot change from %s to %s", from, to),
		)
	}
	return nil
}
