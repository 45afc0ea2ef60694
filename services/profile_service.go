package services

import (
	"context"
	"errors"

	"qa-forum/helper"
	"qa-forum/models"
	"qa-forum/repositories"

	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(ctx context.Context, actor models.Actor) (*models.Profile, error)
	UpdateProfile(ctx context.Context, actor models.Actor, req models.UpdateProfileRequest) (*models.Profile, error)
	DeleteProfile(ctx context.Context, actor models.Actor) error
}

type profileService struct {
	store     *repositories.Store
	validator *helper.Validator
}

func NewProfileService(store *repositories.Store, validator *helper.Validator) ProfileService {
	return &profileService{store: store, validator: validator}
}

func (s *profileService) GetProfile(ctx context.Context, actor models.Actor) (*models.Profile, error) {
	if !actor.Authenticated() {
		return nil, models.ErrUnauthenticated
	}

	profile, err := s.store.Profiles.GetByID(ctx, actor.ProfileID)
	if err != nil {
		return nil, notFoundOr(err, "profile %d not found", actor.ProfileID)
	}
	return profile, nil
}

// UpdateProfile renames the caller or changes its email. A username or email
// held by another user is a conflict; re-submitting the current value is not.
func (s *profileService) UpdateProfile(ctx context.Context, actor models.Actor, req models.UpdateProfileRequest) (*models.Profile, error) {
	if !actor.Authenticated() {
		return nil, models.ErrUnauthenticated
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	var profile *models.Profile
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		profile, err = tx.Profiles.GetByID(ctx, actor.ProfileID)
		if err != nil {
			return notFoundOr(err, "profile %d not found", actor.ProfileID)
		}

		fields := map[string]interface{}{}
		if req.Username != "" && req.Username != profile.User.Username {
			if err := ensureUnused(ctx, tx.Users.GetByUsername, "username", req.Username); err != nil {
				return err
			}
			fields["username"] = req.Username
		}
		if req.Email != "" && req.Email != profile.User.Email {
			if err := ensureUnused(ctx, tx.Users.GetByEmail, "email", req.Email); err != nil {
				return err
			}
			fields["email"] = req.Email
		}
		if len(fields) == 0 {
			return nil
		}

		if err := tx.Users.Update(ctx, profile.UserID, fields); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.NewConflict("username or email already in use")
			}
			return notFoundOr(err, "user %d not found", profile.UserID)
		}
		profile, err = tx.Profiles.GetByID(ctx, profile.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// ensureUnused fails with a conflict when lookup finds a user holding value.
func ensureUnused(ctx context.Context, lookup func(context.Context, string) (*models.User, error), field, value string) error {
	_, err := lookup(ctx, value)
	if err == nil {
		return models.NewConflict("%s %q already in use", field, value)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// DeleteProfile removes the caller's account. Its questions go with their
// answers and votes, its answers elsewhere decrement their question's answer
// count, and its remaining votes are retracted from the surviving targets.
func (s *profileService) DeleteProfile(ctx context.Context, actor models.Actor) error {
	if !actor.Authenticated() {
		return models.ErrUnauthenticated
	}

	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		profile, err := tx.Profiles.GetByID(ctx, actor.ProfileID)
		if err != nil {
			return notFoundOr(err, "profile %d not found", actor.ProfileID)
		}

		questionIDs, err := tx.Questions.IDsByProfile(ctx, profile.ID)
		if err != nil {
			return err
		}
		if err := deleteQuestions(ctx, tx, questionIDs); err != nil {
			return err
		}

		answers, err := tx.Answers.ByProfile(ctx, profile.ID)
		if err != nil {
			return err
		}
		for i := range answers {
			if err := deleteAnswer(ctx, tx, &answers[i]); err != nil {
				return err
			}
		}

		if err := tx.QuestionVotes.RetractByVoter(ctx, profile.ID); err != nil {
			return err
		}
		if err := tx.AnswerVotes.RetractByVoter(ctx, profile.ID); err != nil {
			return err
		}

		if err := tx.Profiles.Delete(ctx, profile.ID); err != nil {
			return err
		}
		return tx.Users.Delete(ctx, profile.UserID)
	})
}
