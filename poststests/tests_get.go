package poststests

import (
	"net/http"

	"github.com/stretchr/testify/assert"
)

func DoGetTests(t *T) {
	t.Run("list returns 200", func(t *T) {
		t.AssertStatus(t.GetPosts(), http.StatusOK)
	})

	t.Run("get by id returns 200", func(t *T) {
		id, _ := t.RequireFirstPost()
		t.AssertStatus(t.GetPost(id), http.StatusOK)
	})

	t.Run("get by id matches listing", func(t *T) {
		id, listed := t.RequireFirstPost()
		resp := t.GetPost(id)
		t.RequireStatus(resp, http.StatusOK)
		post := t.RequireJSON(resp)
		assert.True(t, listed.Equal(post), "Response does not match expected post %s. Got: %s", listed, post)
	})

	t.Run("nonexistent post returns 404", func(t *T) {
		t.AssertStatus(t.GetPost(t.NonexistentID()), http.StatusNotFound)
	})
}
