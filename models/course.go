package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null;index" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Price       float64    `gorm:"type:numeric(12,2);not null" json:"price"`
	Thumbnail   string     `gorm:"type:text;not null" json:"thumbnail"`
	MentorID    *uuid.UUID `gorm:"type:uuid;index" json:"mentor_id"`
	Mentor      *Mentor    `json:"mentor,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	Lessons     []Lesson   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"lessons"`
}

type Lesson struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	SortOrder int       `gorm:"column:sort_order;not null;default:1" json:"order"` // Thứ tự trong khóa học
	Modules   []Module  `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE;" json:"modules"`
}

type Module struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID  uuid.UUID `gorm:"type:uuid;not null;index" json:"lesson_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	VideoURL  *string   `gorm:"type:text" json:"video_url"`
	SortOrder int       `gorm:"column:sort_order;not null;default:1" json:"order"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ModuleCount is the total number of modules across all lessons.
func (c *Course) ModuleCount() int {
	n := 0
	for _, l := range c.Lessons {
		n += len(l.Modules)
	}
	return n
}
