package services

import (
	"context"

	"qa-forum/helper"
	"qa-forum/models"
	"qa-forum/monitoring"
	"qa-forum/repositories"
)

type AnswerService interface {
	CreateAnswer(ctx context.Context, actor models.Actor, questionID uint, req models.CreateAnswerRequest) (*models.Answer, error)
	DeleteAnswer(ctx context.Context, actor models.Actor, answerID uint) error
	ToggleCorrect(ctx context.Context, actor models.Actor, answerID uint) (*models.ActionResponse, error)
}

type answerService struct {
	store     *repositories.Store
	validator *helper.Validator
}

func NewAnswerService(store *repositories.Store, validator *helper.Validator) AnswerService {
	return &answerService{
		store:     store,
		validator: validator,
	}
}

// CreateAnswer inserts the answer and bumps the question's answer count in
// the same transaction.
func (s *answerService) CreateAnswer(ctx context.Context, actor models.Actor, questionID uint, req models.CreateAnswerRequest) (*models.Answer, error) {
	if !actor.Authenticated() {
		return nil, models.ErrUnauthenticated
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	answer := &models.Answer{
		ProfileID:  actor.ProfileID,
		QuestionID: questionID,
		Text:       req.Text,
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Questions.LockByID(ctx, questionID); err != nil {
			return notFoundOr(err, "question %d not found", questionID)
		}
		if err := tx.Answers.Create(ctx, answer); err != nil {
			return err
		}
		return tx.Questions.AddAnswerCount(ctx, questionID, 1)
	})
	if err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *answerService) DeleteAnswer(ctx context.Context, actor models.Actor, answerID uint) error {
	if !actor.Authenticated() {
		return models.ErrUnauthenticated
	}

	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		answer, err := tx.Answers.GetByID(ctx, answerID)
		if err != nil {
			return notFoundOr(err, "answer %d not found", answerID)
		}
		if !actor.CanModify(answer.ProfileID) {
			return models.NewForbidden("only the author can delete answer %d", answerID)
		}
		return deleteAnswer(ctx, tx, answer)
	})
}

// ToggleCorrect flips the answer's correct flag. Turning it on fails once
// MaxCorrectAnswers answers of the question are flagged; turning it off
// always succeeds. The question row is locked while counting.
func (s *answerService) ToggleCorrect(ctx context.Context, actor models.Actor, answerID uint) (*models.ActionResponse, error) {
	if !actor.Authenticated() {
		return nil, models.ErrUnauthenticated
	}

	var flag bool
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		answer, err := tx.Answers.GetByID(ctx, answerID)
		if err != nil {
			return notFoundOr(err, "answer %d not found", answerID)
		}
		if _, err := tx.Questions.LockByID(ctx, answer.QuestionID); err != nil {
			return notFoundOr(err, "question %d not found", answer.QuestionID)
		}

		// re-read under the question lock
		answer, err = tx.Answers.GetByID(ctx, answerID)
		if err != nil {
			return notFoundOr(err, "answer %d not found", answerID)
		}

		if !answer.IsCorrect {
			correct, err := tx.Answers.CountCorrect(ctx, answer.QuestionID)
			if err != nil {
				return err
			}
			if correct >= models.MaxCorrectAnswers {
				return models.NewConflict("question %d already has %d correct answers", answer.QuestionID, models.MaxCorrectAnswers)
			}
		}

		flag = !answer.IsCorrect
		return tx.Answers.SetCorrect(ctx, answerID, flag)
	})
	if err != nil {
		monitoring.CorrectToggles.WithLabelValues("rejected").Inc()
		return nil, err
	}

	if flag {
		monitoring.CorrectToggles.WithLabelValues("on").Inc()
	} else {
		monitoring.CorrectToggles.WithLabelValues("off").Inc()
	}
	return &models.ActionResponse{Action: flag}, nil
}
