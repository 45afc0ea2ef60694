package repositories

import (
	"context"

	"qa-forum/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository interface {
	WithTx(tx *gorm.DB) QuestionRepository
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	LockByID(ctx context.Context, id uint) (*models.Question, error)
	Newest(ctx context.Context) ([]models.Question, error)
	Hottest(ctx context.Context) ([]models.Question, error)
	ByTag(ctx context.Context, tagID uint) ([]models.Question, error)
	IDsByProfile(ctx context.Context, profileID uint) ([]uint, error)
	AddAnswerCount(ctx context.Context, id uint, delta int) error
	Delete(ctx context.Context, id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) WithTx(tx *gorm.DB) QuestionRepository {
	return &questionRepository{db: tx}
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Omit("Tags").Create(question).Error
}

func (r *questionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).
		Preload("Profile.User").
		Preload("Tags").
		First(&question, id).Error
	return &question, err
}

// LockByID loads the question row with a row lock held until the surrounding
// transaction ends. Stores without row locks ignore the clause.
func (r *questionRepository) LockByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&question, id).Error
	return &question, err
}

func (r *questionRepository) list(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Question{}).
		Preload("Profile.User").
		Preload("Tags")
}

func (r *questionRepository) Newest(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	err := r.list(ctx).
		Order("questions.created_at desc").
		Order("questions.id desc").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Hottest(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	err := r.list(ctx).
		Order("questions.rating desc").
		Order("questions.id desc").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) ByTag(ctx context.Context, tagID uint) ([]models.Question, error) {
	var questions []models.Question
	err := r.list(ctx).
		Joins("JOIN question_tags ON question_tags.question_id = questions.id").
		Where("question_tags.tag_id = ?", tagID).
		Order("questions.rating desc").
		Order("questions.id desc").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) IDsByProfile(ctx context.Context, profileID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("profile_id = ?", profileID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *questionRepository) AddAnswerCount(ctx context.Context, id uint, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("id = ?", id).
		UpdateColumn("answer_count", gorm.Expr("answer_count + ?", delta)).Error
}

// Delete removes the question and its tag links. Tag ratings are left as they
// are. Answers and votes must already be gone.
func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("question_id = ?", id).Delete(&models.QuestionTag{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Question{}, id).Error
}
