package repositories_test

import (
	"context"
	"testing"

	"qa-forum/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)


func TestTagRepository_AttachToQuestion(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	author := testutil.CreateMember(t, store, "author")
	testutil.CreateTags(t, store, "go", "sql", "http")
	question := testutil.CreateQuestion(t, store, author, "title")

	tags, err := store.Tags.AttachToQuestion(ctx, question.ID, []string{"sql", " go ", "unknown", "go", ""})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "go", tags[0].Name)
	assert.Equal(t, 1, tags[0].Rating)
	assert.Equal(t, "sql", tags[1].Name)

	// already linked tags are not counted twice
	tags, err = store.Tags.AttachToQuestion(ctx, question.ID, []string{"go", "http"})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "http", tags[0].Name)

	goTag, err := store.Tags.GetByName(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, 1, goTag.Rating)

	loaded, err := store.Questions.GetByID(ctx, question.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Tags, 3)
}

func TestTagRepository_AttachNothing(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	author := testutil.CreateMember(t, store, "author")
	question := testutil.CreateQuestion(t, store, author, "title")

	tags, err := store.Tags.AttachToQuestion(ctx, question.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, tags)

	tags, err = store.Tags.AttachToQuestion(ctx, question.ID, []string{"missing"})
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTagRepository_PopularOrdersByRatingThenName(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	author := testutil.CreateMember(t, store, "author")
	testutil.CreateTags(t, store, "c", "b", "a", "d")

	for i := 0; i < 3; i++ {
		q := testutil.CreateQuestion(t, store, author, "q")
		_, err := store.Tags.AttachToQuestion(ctx, q.ID, []string{"d"})
		require.NoError(t, err)
		if i == 0 {
			_, err = store.Tags.AttachToQuestion(ctx, q.ID, []string{"b"})
			require.NoError(t, err)
		}
	}

	tags, err := store.Tags.Popular(ctx, 3)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "d", tags[0].Name)
	assert.Equal(t, 3, tags[0].Rating)
	assert.Equal(t, "b", tags[1].Name)
	assert.Equal(t, "a", tags[2].Name)
}
