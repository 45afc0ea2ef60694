package services

import (
	"context"
	"errors"

	"qa-forum/models"
	"qa-forum/monitoring"
	"qa-forum/repositories"
)

type VoteService interface {
	VoteQuestion(ctx context.Context, actor models.Actor, questionID uint, isLike bool) (*models.RatingResponse, error)
	VoteAnswer(ctx context.Context, actor models.Actor, answerID uint, isLike bool) (*models.RatingResponse, error)
	RetractQuestionVote(ctx context.Context, actor models.Actor, questionID uint) (*models.RatingResponse, error)
	RetractAnswerVote(ctx context.Context, actor models.Actor, answerID uint) (*models.RatingResponse, error)
}

type voteService struct {
	store *repositories.Store
}

func NewVoteService(store *repositories.Store) VoteService {
	return &voteService{store: store}
}

const (
	voteCast      = "cast"
	voteToggle    = "toggle"
	voteRetract   = "retract"
	voteUnchanged = "unchanged"
)

func (s *voteService) VoteQuestion(ctx context.Context, actor models.Actor, questionID uint, isLike bool) (*models.RatingResponse, error) {
	if !actor.Authenticated() {
		return nil, models.ErrUnauthenticated
	}

	var rating int
	var action string
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		rating, action, err = castOrToggle(ctx, tx.QuestionVotes, questionID, actor.ProfileID, isLike,
			func() *models.QuestionVote {
				return &models.QuestionVote{QuestionID: questionID, ProfileID: actor.ProfileID, IsLike: isLike}
			})
		return err
	})
	if err != nil {
		return nil, err
	}

	monitoring.VotesTotal.WithLabelValues("question", action).Inc()
	return &models.RatingResponse{Rating: rating}, nil
}

func (s *voteService) VoteAnswer(ctx context.Context, actor models.Actor, answerID uint, isLike bool) (*models.RatingResponse, error) {
	if !actor.Authenticated() {
		return nil, models.ErrUnauthenticated
	}

	var rating int
	var action string
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		rating, action, err = castOrToggle(ctx, tx.AnswerVotes, answerID, actor.ProfileID, isLike,
			func() *models.AnswerVote {
				return &models.AnswerVote{AnswerID: answerID, ProfileID: actor.ProfileID, IsLike: isLike}
			})
		return err
	})
	if err != nil {
		return nil, err
	}

	monitoring.VotesTotal.WithLabelValues("answer", action).Inc()
	return &models.RatingResponse{Rating: rating}, nil
}

func (s *voteService) RetractQuestionVote(ctx context.Context, actor models.Actor, questionID uint) (*models.RatingResponse, error) {
	if !actor.Authenticated() {
		return nil, models.ErrUnauthenticated
	}

	var rating int
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		rating, err = retract(ctx, tx.QuestionVotes, questionID, actor.ProfileID)
		return err
	})
	if err != nil {
		return nil, err
	}

	monitoring.VotesTotal.WithLabelValues("question", voteRetract).Inc()
	return &models.RatingResponse{Rating: rating}, nil
}

func (s *voteService) RetractAnswerVote(ctx context.Context, actor models.Actor, answerID uint) (*models.RatingResponse, error) {
	if !actor.Authenticated() {
		return nil, models.ErrUnauthenticated
	}

	var rating int
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		rating, err = retract(ctx, tx.AnswerVotes, answerID, actor.ProfileID)
		return err
	})
	if err != nil {
		return nil, err
	}

	monitoring.VotesTotal.WithLabelValues("answer", voteRetract).Inc()
	return &models.RatingResponse{Rating: rating}, nil
}

// castOrToggle inserts the first vote of a pair, flips an existing vote of the
// opposite polarity, and leaves a vote of the same polarity alone. The pair is
// read only after the target is locked.
func castOrToggle[V any, P repositories.VotePtr[V]](
	ctx context.Context,
	ledger *repositories.VoteLedger[V, P],
	targetID, voterID uint,
	isLike bool,
	newVote func() P,
) (int, string, error) {
	if _, err := ledger.LockTarget(ctx, targetID); err != nil {
		return 0, "", err
	}

	existing, err := ledger.Find(ctx, targetID, voterID)

	var notFound models.ErrorNotFound
	switch {
	case errors.As(err, &notFound):
		rating, err := ledger.Cast(ctx, newVote())
		return rating, voteCast, err
	case err != nil:
		return 0, "", err
	case existing.Liked() != isLike:
		rating, err := ledger.Toggle(ctx, existing)
		return rating, voteToggle, err
	default:
		rating, err := ledger.Rating(ctx, targetID)
		return rating, voteUnchanged, err
	}
}

func retract[V any, P repositories.VotePtr[V]](
	ctx context.Context,
	ledger *repositories.VoteLedger[V, P],
	targetID, voterID uint,
) (int, error) {
	if _, err := ledger.LockTarget(ctx, targetID); err != nil {
		return 0, err
	}

	existing, err := ledger.Find(ctx, targetID, voterID)
	if err != nil {
		return 0, err
	}
	return ledger.Delete(ctx, existing)
}
