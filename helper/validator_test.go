package helper

import (
	"testing"

	"qa-forum/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnderscore(t *testing.T) {
	cases := map[string]string{
		"Title":       "title",
		"AnswerCount": "answer_count",
		"IsLike":      "is_like",
		"ProfileID":   "profile_id",
		"HTTPStatus":  "http_status",
	}
	for in, want := range cases {
		assert.Equal(t, want, Underscore(in), in)
	}
}

func TestValidatorStruct(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Struct(models.CreateTagRequest{Name: "go"}))

	err := v.Struct(models.AttachTagsRequest{})
	var validation models.ErrorValidation
	require.ErrorAs(t, err, &validation)
	require.Contains(t, validation.Fields, "tags")
	assert.NotEmpty(t, validation.Fields["tags"][0])
}
