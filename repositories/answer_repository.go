package repositories

import (
	"context"

	"qa-forum/models"

	"gorm.io/gorm"
)

type AnswerRepository interface {
	WithTx(tx *gorm.DB) AnswerRepository
	Create(ctx context.Context, answer *models.Answer) error
	GetByID(ctx context.Context, id uint) (*models.Answer, error)
	ByQuestion(ctx context.Context, questionID uint) ([]models.Answer, error)
	ByProfile(ctx context.Context, profileID uint) ([]models.Answer, error)
	IDsByQuestions(ctx context.Context, questionIDs []uint) ([]uint, error)
	CountCorrect(ctx context.Context, questionID uint) (int64, error)
	SetCorrect(ctx context.Context, id uint, isCorrect bool) error
	Delete(ctx context.Context, id uint) error
	DeleteByQuestions(ctx context.Context, questionIDs []uint) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) WithTx(tx *gorm.DB) AnswerRepository {
	return &answerRepository{db: tx}
}

func (r *answerRepository) Create(ctx context.Context, answer *models.Answer) error {
	return r.db.WithContext(ctx).Create(answer).Error
}

func (r *answerRepository) GetByID(ctx context.Context, id uint) (*models.Answer, error) {
	var answer models.Answer
	err := r.db.WithContext(ctx).First(&answer, id).Error
	return &answer, err
}

func (r *answerRepository) ByQuestion(ctx context.Context, questionID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.db.WithContext(ctx).
		Preload("Profile.User").
		Where("question_id = ?", questionID).
		Order("rating desc").
		Order("id asc").
		Find(&answers).Error
	return answers, err
}

func (r *answerRepository) ByProfile(ctx context.Context, profileID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).Find(&answers).Error
	return answers, err
}

func (r *answerRepository) IDsByQuestions(ctx context.Context, questionIDs []uint) ([]uint, error) {
	var ids []uint
	if len(questionIDs) == 0 {
		return ids, nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.Answer{}).
		Where("question_id IN ?", questionIDs).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *answerRepository) CountCorrect(ctx context.Context, questionID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Answer{}).
		Where("question_id = ? AND is_correct = ?", questionID, true).
		Count(&count).Error
	return count, err
}

func (r *answerRepository) SetCorrect(ctx context.Context, id uint, isCorrect bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Answer{}).
		Where("id = ?", id).
		Update("is_correct", isCorrect).Error
}

func (r *answerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Answer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFound("answer %d not found", id)
	}
	return nil
}

func (r *answerRepository) DeleteByQuestions(ctx context.Context, questionIDs []uint) error {
	if len(questionIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("question_id IN ?", questionIDs).Delete(&models.Answer{}).Error
}
