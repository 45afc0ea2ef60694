package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories so that a service method can run all of
// them on one transaction.
type Store struct {
	DB            *gorm.DB
	Users         UserRepository
	Profiles      ProfileRepository
	Tags          TagRepository
	Questions     QuestionRepository
	Answers       AnswerRepository
	QuestionVotes *QuestionVoteLedger
	AnswerVotes   *AnswerVoteLedger
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		DB:            db,
		Users:         NewUserRepository(db),
		Profiles:      NewProfileRepository(db),
		Tags:          NewTagRepository(db),
		Questions:     NewQuestionRepository(db),
		Answers:       NewAnswerRepository(db),
		QuestionVotes: NewQuestionVoteLedger(db),
		AnswerVotes:   NewAnswerVoteLedger(db),
	}
}

func (s *Store) withTx(tx *gorm.DB) *Store {
	return &Store{
		DB:            tx,
		Users:         s.Users.WithTx(tx),
		Profiles:      s.Profiles.WithTx(tx),
		Tags:          s.Tags.WithTx(tx),
		Questions:     s.Questions.WithTx(tx),
		Answers:       s.Answers.WithTx(tx),
		QuestionVotes: s.QuestionVotes.WithTx(tx),
		AnswerVotes:   s.AnswerVotes.WithTx(tx),
	}
}

// Transaction runs fn on a transaction-bound copy of the store. Returning an
// error from fn rolls back every write fn made.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(s.withTx(tx))
	})
}
