package models

import (
	"time"
)

type Question struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	ProfileID   uint      `json:"profile_id" gorm:"not null;index"`
	Profile     *Profile  `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	Tags        []Tag     `json:"tags" gorm:"many2many:question_tags;"`
	Rating      int       `json:"rating" gorm:"not null;default:0;index"`
	AnswerCount int       `json:"answer_count" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// QuestionTag is the join row between questions and tags.
type QuestionTag struct {
	QuestionID uint      `json:"question_id" gorm:"primaryKey"`
	TagID      uint      `json:"tag_id" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
}

type Answer struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	ProfileID  uint      `json:"profile_id" gorm:"not null;index"`
	Profile    *Profile  `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	QuestionID uint      `json:"question_id" gorm:"not null;index"`
	Question   *Question `json:"-" gorm:"foreignKey:QuestionID"`
	Text       string    `json:"text" gorm:"type:text;not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"not null"`
	Rating     int       `json:"rating" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MaxCorrectAnswers caps how many answers of one question may be flagged
// correct at the same time.
const MaxCorrectAnswers = 3
