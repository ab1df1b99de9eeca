package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Teacher is the tenant. The ID mirrors the identity provider's user id.
type Teacher struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Email string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Slug  string `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Name  string `gorm:"size:100" json:"name"`

	PhotoURL  string         `gorm:"size:500" json:"photo_url"`
	Bio       string         `gorm:"type:text" json:"bio"`
	City      string         `gorm:"size:100" json:"city"`
	Country   string         `gorm:"size:100" json:"country"`
	Languages pq.StringArray `gorm:"type:text[]" json:"languages"`
	Timezone  string         `gorm:"size:64;default:'UTC'" json:"timezone"`

	OnboardingCompleted bool `gorm:"default:false" json:"onboarding_completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Teacher) BeforeCreate(*gorm.DB) error {
	ensureID(&t.ID)
	return nil
}
