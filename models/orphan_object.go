package models

import "time"

// OrphanObject is a bucket object whose owning row was never written. It is
// removed by the orphan sweeper.
type OrphanObject struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"type:text;not null;uniqueIndex" json:"key"`
	Reason    string    `gorm:"type:text" json:"reason"`
	Attempts  int       `gorm:"not null;default:0" json:"attempts"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
