package services

import (
	"errors"

	"qa-forum/models"

	"gorm.io/gorm"
)

// notFoundOr turns gorm's missing-record error into models.ErrorNotFound.
func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFound(format, args...)
	}
	return err
}
