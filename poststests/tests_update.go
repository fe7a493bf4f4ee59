package poststests

import (
	"net/http"

	"github.com/launchdarkly/posts-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
)

func DoUpdateTests(t *T) {
	t.Run("full update returns 200", func(t *T) {
		id, _ := t.RequireFirstPost()
		t.AssertStatus(t.ReplacePost(id, servicedef.NewFullUpdate(id)), http.StatusOK)
	})

	t.Run("full update echoes post", func(t *T) {
		id, _ := t.RequireFirstPost()
		expected := servicedef.NewFullUpdate(id)
		resp := t.ReplacePost(id, expected)
		t.RequireStatus(resp, http.StatusOK)
		actual := t.RequireJSON(resp)
		assert.True(t, expected.Equal(actual), "Response does not match expected post %s. Got: %s", expected, actual)
	})

	t.Run("full update of nonexistent post returns 404", func(t *T) {
		id := t.NonexistentID()
		// the payload names an existing post; only the URL refers to the missing one
		t.AssertStatus(t.ReplacePost(id, servicedef.NewFullUpdate(id-1)), http.StatusNotFound)
	})

	t.Run("partial update returns 200", func(t *T) {
		id, _ := t.RequireFirstPost()
		t.AssertStatus(t.UpdatePost(id, servicedef.PartialUpdates()[0].AsPayload()), http.StatusOK)
	})

	for _, update := range servicedef.PartialUpdates() {
		update := update
		t.Run("partial update of "+update.Field+" merges", func(t *T) {
			id, before := t.RequireFirstPost()
			resp := t.UpdatePost(id, update.AsPayload())
			t.RequireStatus(resp, http.StatusOK)
			expected := servicedef.Merge(before, update.AsPayload())
			actual := t.RequireJSON(resp)
			assert.True(t, expected.Equal(actual), "Response does not match expected post %s. Got: %s", expected, actual)
		})
	}

	t.Run("partial update of nonexistent post returns 404", func(t *T) {
		id := t.NonexistentID()
		t.AssertStatus(t.UpdatePost(id, servicedef.PartialUpdates()[0].AsPayload()), http.StatusNotFound)
	})
}
