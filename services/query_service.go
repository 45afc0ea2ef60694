package services

import (
	"context"

	"qa-forum/models"
	"qa-forum/repositories"
)

const (
	DefaultPopularTags = 15
	DefaultBestMembers = 10
)

// QueryService serves the read-only listings. None of its methods write.
type QueryService interface {
	NewestQuestions(ctx context.Context) ([]models.Question, error)
	HottestQuestions(ctx context.Context) ([]models.Question, error)
	QuestionsByTag(ctx context.Context, name string) ([]models.Question, error)
	AnswersByQuestion(ctx context.Context, questionID uint) ([]models.Answer, error)
	PopularTags(ctx context.Context, limit int) ([]models.Tag, error)
	BestMembers(ctx context.Context, limit int) ([]models.Profile, error)
}

type queryService struct {
	store *repositories.Store
}

func NewQueryService(store *repositories.Store) QueryService {
	return &queryService{store: store}
}

func (s *queryService) NewestQuestions(ctx context.Context) ([]models.Question, error) {
	return s.store.Questions.Newest(ctx)
}

func (s *queryService) HottestQuestions(ctx context.Context) ([]models.Question, error) {
	return s.store.Questions.Hottest(ctx)
}

func (s *queryService) QuestionsByTag(ctx context.Context, name string) ([]models.Question, error) {
	tag, err := s.store.Tags.GetByName(ctx, name)
	if err != nil {
		return nil, notFoundOr(err, "tag %q not found", name)
	}
	return s.store.Questions.ByTag(ctx, tag.ID)
}

func (s *queryService) AnswersByQuestion(ctx context.Context, questionID uint) ([]models.Answer, error) {
	if _, err := s.store.Questions.GetByID(ctx, questionID); err != nil {
		return nil, notFoundOr(err, "question %d not found", questionID)
	}
	return s.store.Answers.ByQuestion(ctx, questionID)
}

func (s *queryService) PopularTags(ctx context.Context, limit int) ([]models.Tag, error) {
	return s.store.Tags.Popular(ctx, clampLimit(limit, DefaultPopularTags))
}

// BestMembers orders profiles by rating. Nothing writes profile ratings yet,
// so every member ranks at zero.
func (s *queryService) BestMembers(ctx context.Context, limit int) ([]models.Profile, error) {
	return s.store.Profiles.BestMembers(ctx, clampLimit(limit, DefaultBestMembers))
}

func clampLimit(limit, max int) int {
	if limit <= 0 || limit > max {
		return max
	}
	return limit
}
