package repositories_test

import (
	"context"
	"testing"

	"qa-forum/models"
	"qa-forum/repositories"
	"qa-forum/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteLedger_CastToggleDelete(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	author := testutil.CreateMember(t, store, "author")
	voter := testutil.CreateMember(t, store, "voter")
	question := testutil.CreateQuestion(t, store, author, "How do channels work?")

	rating, err := store.QuestionVotes.Cast(ctx, &models.QuestionVote{
		QuestionID: question.ID, ProfileID: voter.ProfileID, IsLike: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rating)

	vote, err := store.QuestionVotes.Find(ctx, question.ID, voter.ProfileID)
	require.NoError(t, err)
	assert.True(t, vote.Liked())

	rating, err = store.QuestionVotes.Toggle(ctx, vote)
	require.NoError(t, err)
	assert.Equal(t, -1, rating)
	assert.False(t, vote.Liked())

	rating, err = store.QuestionVotes.Delete(ctx, vote)
	require.NoError(t, err)
	assert.Equal(t, 0, rating)

	_, err = store.QuestionVotes.Find(ctx, question.ID, voter.ProfileID)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
}

func TestVoteLedger_SecondCastIsConflict(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	author := testutil.CreateMember(t, store, "author")
	voter := testutil.CreateMember(t, store, "voter")
	question := testutil.CreateQuestion(t, store, author, "Why is my map nil?")
	answer := testutil.CreateAnswer(t, store, author, question.ID, "make it first")

	_, err := store.AnswerVotes.Cast(ctx, &models.AnswerVote{AnswerID: answer.ID, ProfileID: voter.ProfileID, IsLike: false})
	require.NoError(t, err)

	_, err = store.AnswerVotes.Cast(ctx, &models.AnswerVote{AnswerID: answer.ID, ProfileID: voter.ProfileID, IsLike: true})
	assert.ErrorAs(t, err, &models.ErrorConflict{})

	assert.Equal(t, -1, testutil.Rating(t, store.DB, "answers", answer.ID))
}

func TestVoteLedger_MissingTarget(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	voter := testutil.CreateMember(t, store, "voter")

	_, err := store.QuestionVotes.Cast(ctx, &models.QuestionVote{QuestionID: 999, ProfileID: voter.ProfileID, IsLike: true})
	assert.ErrorAs(t, err, &models.ErrorNotFound{})

	_, err = store.AnswerVotes.Rating(ctx, 999)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
}

func TestVoteLedger_RatingMatchesVoteRows(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	author := testutil.CreateMember(t, store, "author")
	question := testutil.CreateQuestion(t, store, author, "Interfaces or generics?")

	polarities := []bool{true, true, false, true, false, false, true}
	var voters []models.Actor
	for i, like := range polarities {
		voter := testutil.CreateMember(t, store, "voter"+string(rune('a'+i)))
		voters = append(voters, voter)
		_, err := store.QuestionVotes.Cast(ctx, &models.QuestionVote{QuestionID: question.ID, ProfileID: voter.ProfileID, IsLike: like})
		require.NoError(t, err)
	}

	// flip two of them
	for _, voter := range voters[:2] {
		vote, err := store.QuestionVotes.Find(ctx, question.ID, voter.ProfileID)
		require.NoError(t, err)
		_, err = store.QuestionVotes.Toggle(ctx, vote)
		require.NoError(t, err)
	}

	likes, dislikes, err := store.QuestionVotes.CountByPolarity(ctx, question.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), likes)
	assert.Equal(t, int64(5), dislikes)

	rating, err := store.QuestionVotes.Rating(ctx, question.ID)
	require.NoError(t, err)
	assert.Equal(t, int(likes-dislikes), rating)
}

func TestVoteLedger_RetractByVoter(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	author := testutil.CreateMember(t, store, "author")
	voter := testutil.CreateMember(t, store, "voter")
	other := testutil.CreateMember(t, store, "other")
	q1 := testutil.CreateQuestion(t, store, author, "first")
	q2 := testutil.CreateQuestion(t, store, author, "second")

	cast := func(questionID uint, who models.Actor, like bool) {
		_, err := store.QuestionVotes.Cast(ctx, &models.QuestionVote{QuestionID: questionID, ProfileID: who.ProfileID, IsLike: like})
		require.NoError(t, err)
	}
	cast(q1.ID, voter, true)
	cast(q2.ID, voter, false)
	cast(q1.ID, other, true)

	require.NoError(t, store.QuestionVotes.RetractByVoter(ctx, voter.ProfileID))

	assert.Equal(t, 1, testutil.Rating(t, store.DB, "questions", q1.ID))
	assert.Equal(t, 0, testutil.Rating(t, store.DB, "questions", q2.ID))

	_, err := store.QuestionVotes.Find(ctx, q2.ID, voter.ProfileID)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
}

func TestVoteLedger_DeleteByTargetsKeepsRatings(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	author := testutil.CreateMember(t, store, "author")
	voter := testutil.CreateMember(t, store, "voter")
	question := testutil.CreateQuestion(t, store, author, "title")

	_, err := store.QuestionVotes.Cast(ctx, &models.QuestionVote{QuestionID: question.ID, ProfileID: voter.ProfileID, IsLike: true})
	require.NoError(t, err)

	require.NoError(t, store.QuestionVotes.DeleteByTargets(ctx, []uint{question.ID}))
	require.NoError(t, store.QuestionVotes.DeleteByTargets(ctx, nil))

	likes, dislikes, err := store.QuestionVotes.CountByPolarity(ctx, question.ID)
	require.NoError(t, err)
	assert.Zero(t, likes+dislikes)
	assert.Equal(t, 1, testutil.Rating(t, store.DB, "questions", question.ID))
}

func TestVoteLedger_InsideTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	author := testutil.CreateMember(t, store, "author")
	voter := testutil.CreateMember(t, store, "voter")
	question := testutil.CreateQuestion(t, store, author, "title")

	err := store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.QuestionVotes.Cast(ctx, &models.QuestionVote{QuestionID: question.ID, ProfileID: voter.ProfileID, IsLike: true}); err != nil {
			return err
		}
		return models.NewConflict("abort")
	})
	assert.ErrorAs(t, err, &models.ErrorConflict{})

	assert.Equal(t, 0, testutil.Rating(t, store.DB, "questions", question.ID))
	_, err = store.QuestionVotes.Find(ctx, question.ID, voter.ProfileID)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
}

func TestVoteLedger_ToggleWithStaleHandles(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	author := testutil.CreateMember(t, store, "author")
	voter := testutil.CreateMember(t, store, "voter")
	question := testutil.CreateQuestion(t, store, author, "title")

	_, err := store.QuestionVotes.Cast(ctx, &models.QuestionVote{QuestionID: question.ID, ProfileID: voter.ProfileID, IsLike: true})
	require.NoError(t, err)

	first, err := store.QuestionVotes.Find(ctx, question.ID, voter.ProfileID)
	require.NoError(t, err)
	second, err := store.QuestionVotes.Find(ctx, question.ID, voter.ProfileID)
	require.NoError(t, err)

	rating, err := store.QuestionVotes.Toggle(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, -1, rating)

	// second still believes the vote is a like; the flip already happened
	rating, err = store.QuestionVotes.Toggle(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, -1, rating)
	assert.False(t, second.Liked())

	likes, dislikes, err := store.QuestionVotes.CountByPolarity(ctx, question.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), likes)
	assert.Equal(t, int64(1), dislikes)
	assert.Equal(t, int(likes-dislikes), testutil.Rating(t, store.DB, "questions", question.ID))
}

func TestVoteLedger_DeleteUsesStoredPolarity(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	author := testutil.CreateMember(t, store, "author")
	voter := testutil.CreateMember(t, store, "voter")
	question := testutil.CreateQuestion(t, store, author, "title")
	answer := testutil.CreateAnswer(t, store, author, question.ID, "answer")

	_, err := store.AnswerVotes.Cast(ctx, &models.AnswerVote{AnswerID: answer.ID, ProfileID: voter.ProfileID, IsLike: true})
	require.NoError(t, err)

	stale, err := store.AnswerVotes.Find(ctx, answer.ID, voter.ProfileID)
	require.NoError(t, err)
	fresh, err := store.AnswerVotes.Find(ctx, answer.ID, voter.ProfileID)
	require.NoError(t, err)
	_, err = store.AnswerVotes.Toggle(ctx, fresh)
	require.NoError(t, err)

	rating, err := store.AnswerVotes.Delete(ctx, stale)
	require.NoError(t, err)
	assert.Equal(t, 0, rating)

	_, err = store.AnswerVotes.Delete(ctx, stale)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
	assert.Equal(t, 0, testutil.Rating(t, store.DB, "answers", answer.ID))
}
