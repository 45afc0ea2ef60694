package services

import (
	"context"
	"errors"
	"strings"

	"qa-forum/helper"
	"qa-forum/models"
	"qa-forum/repositories"

	"gorm.io/gorm"
)

type TagService interface {
	CreateTag(ctx context.Context, req models.CreateTagRequest) (*models.Tag, error)
	GetTags(ctx context.Context) ([]models.Tag, error)
	GetTag(ctx context.Context, name string) (*models.Tag, error)
}

type tagService struct {
	store     *repositories.Store
	validator *helper.Validator
}

func NewTagService(store *repositories.Store, validator *helper.Validator) TagService {
	return &tagService{
		store:     store,
		validator: validator,
	}
}

// CreateTag adds a name to the tag vocabulary. Questions can only be tagged
// with names created here.
func (s *tagService) CreateTag(ctx context.Context, req models.CreateTagRequest) (*models.Tag, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	_, err := s.store.Tags.GetByName(ctx, req.Name)
	if err == nil {
		return nil, models.NewConflict("tag %q already exists", req.Name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag := &models.Tag{Name: req.Name}
	if err := s.store.Tags.Create(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflict("tag %q already exists", req.Name)
		}
		return nil, err
	}

	return tag, nil
}

func (s *tagService) GetTags(ctx context.Context) ([]models.Tag, error) {
	return s.store.Tags.GetAll(ctx)
}

func (s *tagService) GetTag(ctx context.Context, name string) (*models.Tag, error) {
	tag, err := s.store.Tags.GetByName(ctx, name)
	if err != nil {
		return nil, notFoundOr(err, "tag %q not found", name)
	}
	return tag, nil
}
