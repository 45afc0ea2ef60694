package models

import (
	"time"
)

// Vote is the behaviour shared by question and answer votes. A vote row
// contributes +1 (like) or -1 (dislike) to the rating of its target.
type Vote interface {
	TargetID() uint
	VoterID() uint
	Liked() bool
	Flip()
}

type QuestionVote struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_question_votes_pair"`
	Question   *Question `json:"-" gorm:"foreignKey:QuestionID"`
	ProfileID  uint      `json:"profile_id" gorm:"not null;uniqueIndex:idx_question_votes_pair"`
	Profile    *Profile  `json:"-" gorm:"foreignKey:ProfileID"`
	IsLike     bool      `json:"is_like" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (v *QuestionVote) TargetID() uint { return v.QuestionID }
func (v *QuestionVote) VoterID() uint  { return v.ProfileID }
func (v *QuestionVote) Liked() bool    { return v.IsLike }
func (v *QuestionVote) Flip()          { v.IsLike = !v.IsLike }

type AnswerVote struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	AnswerID  uint      `json:"answer_id" gorm:"not null;uniqueIndex:idx_answer_votes_pair"`
	Answer    *Answer   `json:"-" gorm:"foreignKey:AnswerID"`
	ProfileID uint      `json:"profile_id" gorm:"not null;uniqueIndex:idx_answer_votes_pair"`
	Profile   *Profile  `json:"-" gorm:"foreignKey:ProfileID"`
	IsLike    bool      `json:"is_like" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *AnswerVote) TargetID() uint { return v.AnswerID }
func (v *AnswerVote) VoterID() uint  { return v.ProfileID }
func (v *AnswerVote) Liked() bool    { return v.IsLike }
func (v *AnswerVote) Flip()          { v.IsLike = !v.IsLike }

// RatingDelta is the contribution a vote with the given polarity makes to its
// target's rating.
func RatingDelta(isLike bool) int {
	if isLike {
		return 1
	}
	return -1
}
