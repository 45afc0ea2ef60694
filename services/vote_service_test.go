package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"qa-forum/models"
	"qa-forum/monitoring"
	"qa-forum/services"
	"qa-forum/testutil"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestVoteService_QuestionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewVoteService(store)
	author := testutil.CreateMember(t, store, "author")
	voter := testutil.CreateMember(t, store, "voter")
	question := testutil.CreateQuestion(t, store, author, "title")

	castBefore := promtest.ToFloat64(monitoring.VotesTotal.WithLabelValues("question", "cast"))
	toggleBefore := promtest.ToFloat64(monitoring.VotesTotal.WithLabelValues("question", "toggle"))

	res, err := svc.VoteQuestion(ctx, voter, question.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rating)

	// same polarity again changes nothing
	res, err = svc.VoteQuestion(ctx, voter, question.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rating)

	res, err = svc.VoteQuestion(ctx, voter, question.ID, false)
	require.NoError(t, err)
	assert.Equal(t, -1, res.Rating)

	res, err = svc.RetractQuestionVote(ctx, voter, question.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Rating)

	_, err = svc.RetractQuestionVote(ctx, voter, question.ID)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})

	assert.Equal(t, castBefore+1, promtest.ToFloat64(monitoring.VotesTotal.WithLabelValues("question", "cast")))
	assert.Equal(t, toggleBefore+1, promtest.ToFloat64(monitoring.VotesTotal.WithLabelValues("question", "toggle")))
}

func TestVoteService_AnswerVotes(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewVoteService(store)
	author := testutil.CreateMember(t, store, "author")
	alice := testutil.CreateMember(t, store, "alice")
	bob := testutil.CreateMember(t, store, "bob")
	question := testutil.CreateQuestion(t, store, author, "title")
	answer := testutil.CreateAnswer(t, store, author, question.ID, "answer")

	res, err := svc.VoteAnswer(ctx, alice, answer.ID, false)
	require.NoError(t, err)
	assert.Equal(t, -1, res.Rating)

	res, err = svc.VoteAnswer(ctx, bob, answer.ID, false)
	require.NoError(t, err)
	assert.Equal(t, -2, res.Rating)

	res, err = svc.VoteAnswer(ctx, alice, answer.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Rating)

	res, err = svc.RetractAnswerVote(ctx, bob, answer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rating)

	// answer votes never touch the question
	assert.Equal(t, 0, testutil.Rating(t, store.DB, "questions", question.ID))
}

func TestVoteService_Errors(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewVoteService(store)
	voter := testutil.CreateMember(t, store, "voter")

	_, err := svc.VoteQuestion(ctx, models.Actor{}, 1, true)
	assert.ErrorAs(t, err, &models.ErrorUnauthorized{})

	_, err = svc.RetractAnswerVote(ctx, models.Actor{}, 1)
	assert.ErrorAs(t, err, &models.ErrorUnauthorized{})

	_, err = svc.VoteQuestion(ctx, voter, 42, true)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})

	_, err = svc.VoteAnswer(ctx, voter, 42, false)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
}

func TestVoteService_ConcurrentVotesKeepRatingConsistent(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewVoteService(store)
	author := testutil.CreateMember(t, store, "author")
	question := testutil.CreateQuestion(t, store, author, "title")

	const voters = 8
	actors := make([]models.Actor, voters)
	for i := range actors {
		actors[i] = testutil.CreateMember(t, store, fmt.Sprintf("voter%d", i))
	}

	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var wg sync.WaitGroup
	for i, actor := range actors {
		wg.Add(1)
		go func(i int, actor models.Actor) {
			defer wg.Done()
			// each voter flips a few times and ends on its own polarity
			for round := 0; round < 3; round++ {
				_, err := svc.VoteQuestion(ctx, actor, question.ID, (i+round)%2 == 0)
				assert.NoError(t, err)
			}
		}(i, actor)
	}
	wg.Wait()

	likes, dislikes, err := store.QuestionVotes.CountByPolarity(ctx, question.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(voters), likes+dislikes)
	assert.Equal(t, int(likes-dislikes), testutil.Rating(t, store.DB, "questions", question.ID))
}
