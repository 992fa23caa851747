package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Mentor struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"size:150;not null" json:"name"`
	Company        *string   `gorm:"size:150" json:"company"`
	Specialization *string   `gorm:"size:150" json:"specialization"`
	PhotoURL       string    `gorm:"type:text;not null" json:"photo_url"`
	IsActive       bool      `gorm:"default:true;not null" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Courses []Course `gorm:"foreignKey:MentorID;constraint:OnDelete:SET NULL;" json:"courses,omitempty"`
}

func (m *Mentor) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
