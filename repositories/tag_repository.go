package repositories

import (
	"context"
	"strings"

	"qa-forum/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	WithTx(tx *gorm.DB) TagRepository
	Create(ctx context.Context, tag *models.Tag) error
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	GetByNames(ctx context.Context, names []string) ([]models.Tag, error)
	GetAll(ctx context.Context) ([]models.Tag, error)
	Popular(ctx context.Context, limit int) ([]models.Tag, error)
	AttachToQuestion(ctx context.Context, questionID uint, names []string) ([]models.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) WithTx(tx *gorm.DB) TagRepository {
	return &tagRepository{db: tx}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error
	return &tag, err
}

func (r *tagRepository) GetByNames(ctx context.Context, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).Where("name IN ?", names).Order("name").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) GetAll(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).Order("name").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) Popular(ctx context.Context, limit int) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).
		Order("rating desc").
		Order("name asc").
		Limit(limit).
		Find(&tags).Error
	return tags, err
}

// AttachToQuestion links every existing tag named in names to the question and
// bumps its rating by one. Unknown names and tags already linked to the
// question are skipped, so a tag is counted once per question.
func (r *tagRepository) AttachToQuestion(ctx context.Context, questionID uint, names []string) ([]models.Tag, error) {
	names = normalizeTagNames(names)
	if len(names) == 0 {
		return []models.Tag{}, nil
	}

	db := r.db.WithContext(ctx)

	attached := r.db.Model(&models.QuestionTag{}).Select("tag_id").Where("question_id = ?", questionID)

	var tags []models.Tag
	err := db.Where("name IN ?", names).
		Where("id NOT IN (?)", attached).
		Order("name").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return []models.Tag{}, nil
	}

	links := make([]models.QuestionTag, 0, len(tags))
	ids := make([]uint, 0, len(tags))
	for _, tag := range tags {
		links = append(links, models.QuestionTag{QuestionID: questionID, TagID: tag.ID})
		ids = append(ids, tag.ID)
	}

	if err := db.Create(&links).Error; err != nil {
		return nil, err
	}

	err = db.Model(&models.Tag{}).
		Where("id IN ?", ids).
		UpdateColumn("rating", gorm.Expr("rating + ?", 1)).Error
	if err != nil {
		return nil, err
	}

	for i := range tags {
		tags[i].Rating++
	}

	return tags, nil
}

func normalizeTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
