package poststests

import (
	"net/http"

	"github.com/launchdarkly/posts-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
)

func DoCreateTests(t *T) {
	t.Run("status code is 201", func(t *T) {
		resp := t.CreatePost(servicedef.NewPostTemplate())
		t.AssertStatus(resp, http.StatusCreated)
	})

	t.Run("response contains id", func(t *T) {
		post := t.RequireRecord(t.RequireCreatedPost())
		assert.True(t, servicedef.RecordID(post).IsDefined(), "Response does not contain 'id': %s", post)
	})

	for _, field := range servicedef.PostFields {
		field := field
		t.Run("response echoes "+field, func(t *T) {
			expected := servicedef.NewPostTemplate().GetByKey(field)
			actual := t.RequireRecord(t.RequireCreatedPost()).GetByKey(field)
			assert.True(t, expected.Equal(actual), "Expected %s %s, but got %s", field, expected, actual)
		})
	}

	for _, field := range servicedef.PostFields {
		field := field
		t.Run("succeeds without "+field, func(t *T) {
			resp := t.CreatePost(servicedef.Without(servicedef.NewPostTemplate(), field))
			t.AssertStatus(resp, http.StatusCreated)
		})
	}

	t.Run("succeeds without request body", func(t *T) {
		resp := t.CreatePost(nil)
		t.AssertStatus(resp, http.StatusCreated)
	})
}
