package models

import (
	"time"
)

const MaxTagNameLength = 16

// Tag rating counts how many times the tag was attached to a question. It is
// never decremented.
type Tag struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"size:16;uniqueIndex;not null"`
	Rating    int       `json:"rating" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
