// Package testutil builds throwaway SQLite-backed stores and fixtures for
// package tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"qa-forum/database"
	"qa-forum/models"
	"qa-forum/repositories"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens a migrated database file under t.TempDir. The pool holds a
// single connection, so concurrent transactions run one after another.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "qa_forum_test.db")
	db, err := gorm.Open(sqlite.Open(database.SQLiteDSN(path)), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func NewStore(t testing.TB) *repositories.Store {
	t.Helper()
	return repositories.NewStore(NewDB(t))
}

// CreateMember inserts a user with its profile and returns the actor that
// acts as that member.
func CreateMember(t testing.TB, store *repositories.Store, username string) models.Actor {
	t.Helper()
	return createUser(t, store, username, models.RoleMember)
}

func CreateAdmin(t testing.TB, store *repositories.Store, username string) models.Actor {
	t.Helper()
	return createUser(t, store, username, models.RoleAdmin)
}

func createUser(t testing.TB, store *repositories.Store, username string, role models.UserRole) models.Actor {
	t.Helper()

	ctx := context.Background()

	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "not-a-hash",
		Role:     role,
	}
	require.NoError(t, store.Users.Create(ctx, user))

	profile := &models.Profile{UserID: user.ID}
	require.NoError(t, store.Profiles.Create(ctx, profile))

	return models.Actor{UserID: user.ID, ProfileID: profile.ID, Role: role}
}

func CreateTags(t testing.TB, store *repositories.Store, names ...string) []models.Tag {
	t.Helper()

	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag := models.Tag{Name: name}
		require.NoError(t, store.Tags.Create(context.Background(), &tag))
		tags = append(tags, tag)
	}
	return tags
}

func CreateQuestion(t testing.TB, store *repositories.Store, author models.Actor, title string) *models.Question {
	t.Helper()

	question := &models.Question{
		ProfileID: author.ProfileID,
		Title:     title,
		Text:      title + " body",
	}
	require.NoError(t, store.Questions.Create(context.Background(), question))
	return question
}

// CreateAnswer inserts an answer directly. The parent's answer count is not
// touched; use the answer service when the count matters.
func CreateAnswer(t testing.TB, store *repositories.Store, author models.Actor, questionID uint, text string) *models.Answer {
	t.Helper()

	answer := &models.Answer{
		ProfileID:  author.ProfileID,
		QuestionID: questionID,
		Text:       text,
	}
	require.NoError(t, store.Answers.Create(context.Background(), answer))
	return answer
}

// Rating reads a rating column straight from the table.
func Rating(t testing.TB, db *gorm.DB, table string, id uint) int {
	t.Helper()

	var rating int
	require.NoError(t, db.Table(table).Select("rating").Where("id = ?", id).Row().Scan(&rating))
	return rating
}
