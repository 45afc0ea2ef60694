package services

import (
	"context"

	"qa-forum/helper"
	"qa-forum/models"
	"qa-forum/repositories"
)

type QuestionService interface {
	AskQuestion(ctx context.Context, actor models.Actor, req models.AskQuestionRequest) (*models.Question, error)
	GetQuestion(ctx context.Context, id uint) (*models.Question, error)
	AttachTags(ctx context.Context, actor models.Actor, questionID uint, req models.AttachTagsRequest) ([]models.Tag, error)
	DeleteQuestion(ctx context.Context, actor models.Actor, questionID uint) error
}

type questionService struct {
	store     *repositories.Store
	validator *helper.Validator
}

func NewQuestionService(store *repositories.Store, validator *helper.Validator) QuestionService {
	return &questionService{
		store:     store,
		validator: validator,
	}
}

// AskQuestion stores the question and attaches the named tags that exist.
func (s *questionService) AskQuestion(ctx context.Context, actor models.Actor, req models.AskQuestionRequest) (*models.Question, error) {
	if !actor.Authenticated() {
		return nil, models.ErrUnauthenticated
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	question := &models.Question{
		ProfileID: actor.ProfileID,
		Title:     req.Title,
		Text:      req.Text,
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Questions.Create(ctx, question); err != nil {
			return err
		}
		_, err := tx.Tags.AttachToQuestion(ctx, question.ID, req.Tags)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.GetQuestion(ctx, question.ID)
}

func (s *questionService) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.store.Questions.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "question %d not found", id)
	}
	return question, nil
}

// AttachTags links more existing tags to a question. Only the author or an
// admin may do it.
func (s *questionService) AttachTags(ctx context.Context, actor models.Actor, questionID uint, req models.AttachTagsRequest) ([]models.Tag, error) {
	if !actor.Authenticated() {
		return nil, models.ErrUnauthenticated
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	var tags []models.Tag
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		question, err := tx.Questions.LockByID(ctx, questionID)
		if err != nil {
			return notFoundOr(err, "question %d not found", questionID)
		}
		if !actor.CanModify(question.ProfileID) {
			return models.NewForbidden("only the author can tag question %d", questionID)
		}

		tags, err = tx.Tags.AttachToQuestion(ctx, questionID, req.Tags)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *questionService) DeleteQuestion(ctx context.Context, actor models.Actor, questionID uint) error {
	if !actor.Authenticated() {
		return models.ErrUnauthenticated
	}

	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		question, err := tx.Questions.LockByID(ctx, questionID)
		if err != nil {
			return notFoundOr(err, "question %d not found", questionID)
		}
		if !actor.CanModify(question.ProfileID) {
			return models.NewForbidden("only the author can delete question %d", questionID)
		}

		return deleteQuestions(ctx, tx, []uint{questionID})
	})
}
