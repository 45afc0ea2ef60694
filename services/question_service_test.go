package services_test

import (
	"context"
	"testing"

	"qa-forum/helper"
	"qa-forum/models"
	"qa-forum/services"
	"qa-forum/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionService_AskWithTags(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewQuestionService(store, helper.NewValidator())
	author := testutil.CreateMember(t, store, "author")
	testutil.CreateTags(t, store, "go", "gorm")

	question, err := svc.AskQuestion(ctx, author, models.AskQuestionRequest{
		Title: "Preload nested associations",
		Text:  "How do I preload Profile.User?",
		Tags:  []string{"gorm", "go", "nosuchtag"},
	})
	require.NoError(t, err)
	assert.Equal(t, author.ProfileID, question.ProfileID)
	assert.Zero(t, question.Rating)
	assert.Zero(t, question.AnswerCount)
	require.Len(t, question.Tags, 2)

	tag, err := store.Tags.GetByName(ctx, "gorm")
	require.NoError(t, err)
	assert.Equal(t, 1, tag.Rating)

	_, err = store.Tags.GetByName(ctx, "nosuchtag")
	assert.Error(t, err)
}

func TestQuestionService_AskValidation(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewQuestionService(store, helper.NewValidator())
	author := testutil.CreateMember(t, store, "author")

	_, err := svc.AskQuestion(ctx, author, models.AskQuestionRequest{Text: "no title"})
	var validation models.ErrorValidation
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "title")

	_, err = svc.AskQuestion(ctx, author, models.AskQuestionRequest{
		Title: "t", Text: "x", Tags: []string{"this-name-is-way-too-long"},
	})
	require.ErrorAs(t, err, &validation)

	_, err = svc.AskQuestion(ctx, models.Actor{}, models.AskQuestionRequest{Title: "t", Text: "x"})
	assert.ErrorAs(t, err, &models.ErrorUnauthorized{})
}

func TestQuestionService_AttachTags(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewQuestionService(store, helper.NewValidator())
	author := testutil.CreateMember(t, store, "author")
	stranger := testutil.CreateMember(t, store, "stranger")
	testutil.CreateTags(t, store, "go")
	question := testutil.CreateQuestion(t, store, author, "title")

	_, err := svc.AttachTags(ctx, stranger, question.ID, models.AttachTagsRequest{Tags: []string{"go"}})
	assert.ErrorAs(t, err, &models.ErrorForbidden{})

	tags, err := svc.AttachTags(ctx, author, question.ID, models.AttachTagsRequest{Tags: []string{"go"}})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, 1, tags[0].Rating)

	_, err = svc.AttachTags(ctx, author, 999, models.AttachTagsRequest{Tags: []string{"go"}})
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
}

func TestQuestionService_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	validator := helper.NewValidator()
	questions := services.NewQuestionService(store, validator)
	answers := services.NewAnswerService(store, validator)
	votes := services.NewVoteService(store)
	author := testutil.CreateMember(t, store, "author")
	voter := testutil.CreateMember(t, store, "voter")
	testutil.CreateTags(t, store, "go")

	question, err := questions.AskQuestion(ctx, author, models.AskQuestionRequest{Title: "t", Text: "x", Tags: []string{"go"}})
	require.NoError(t, err)
	answer, err := answers.CreateAnswer(ctx, voter, question.ID, models.CreateAnswerRequest{Text: "a"})
	require.NoError(t, err)
	_, err = votes.VoteQuestion(ctx, voter, question.ID, true)
	require.NoError(t, err)
	_, err = votes.VoteAnswer(ctx, author, answer.ID, true)
	require.NoError(t, err)

	err = questions.DeleteQuestion(ctx, voter, question.ID)
	assert.ErrorAs(t, err, &models.ErrorForbidden{})

	require.NoError(t, questions.DeleteQuestion(ctx, author, question.ID))

	_, err = questions.GetQuestion(ctx, question.ID)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})

	for table, column := range map[string]string{
		"answers":        "question_id",
		"question_votes": "question_id",
		"question_tags":  "question_id",
	} {
		var n int64
		require.NoError(t, store.DB.Table(table).Where(column+" = ?", question.ID).Count(&n).Error)
		assert.Zero(t, n, table)
	}
	var n int64
	require.NoError(t, store.DB.Table("answer_votes").Where("answer_id = ?", answer.ID).Count(&n).Error)
	assert.Zero(t, n)

	// tag ratings never go down
	tag, err := store.Tags.GetByName(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, 1, tag.Rating)
}
