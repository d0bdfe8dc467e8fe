package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course is a read-only catalog row. Courses are seeded externally;
// nothing in this service creates or edits them.
type Course struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Lessons []Lesson `json:"lessons,omitempty"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Lesson struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID string `gorm:"type:uuid;not null;index" json:"course_id"`
	Title    string `gorm:"not null" json:"title"`
	// SortOrder positions the lesson within its course. Ties are
	// broken by id so the sequence is a strict total order.
	SortOrder       int    `gorm:"not null;default:0" json:"sort_order"`
	VideoPlaybackID string `json:"video_playback_id,omitempty"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
