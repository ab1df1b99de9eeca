package venue

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/validators"
)

type Input struct {
	Name     string `json:"name" validate:"required,notblank,min=2,max=100"`
	Address  string `json:"address" validate:"required,notblank,min=5,max=500"`
	City     string `json:"city" validate:"omitempty,min=2,max=100"`
	Country  string `json:"country" validate:"omitempty,min=2,max=100"`
	Capacity *int   `json:"capacity" validate:"omitempty,gt=0"`
	Notes    string `json:"notes" validate:"max=2000"`
}

// Apply copies the sanitised input onto v.
func (in Input) Apply(v *models.Venue) {
	v.Name = validators.SanitizeText(in.Name)
	v.Address = validators.SanitizeText(in.Address)
	v.City = validators.SanitizeText(in.City)
	v.Country = validators.SanitizeText(in.Country)
	v.Capacity = in.Capacity
	v.Notes = validators.SanitizeText(in.Notes)
}

func (in Input) Model(teacherID uuid.UUID) *models.Venue {
	v := &models.Venue{TeacherID: teacherID}
	in.Apply(v)
	return v
}
