package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Venue struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null;index" json:"teacher_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Address  string `gorm:"size:500;not null" json:"address"`
	City     string `gorm:"size:100" json:"city"`
	Country  string `gorm:"size:100" json:"country"`
	Capacity *int   `json:"capacity"`
	Notes    string `gorm:"type:text" json:"notes"`
	IsShared bool   `gorm:"default:false" json:"is_shared"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *Venue) BeforeCreate(*gorm.DB) error {
	ensureID(&v.ID)
	return nil
}
