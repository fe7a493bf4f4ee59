package poststests

import (
	"net/http"

	"github.com/launchdarkly/posts-contract-tests/servicedef"

	"github.com/stretchr/testify/require"
)

func DoDeleteTests(t *T) {
	t.Run("delete created post returns 200", func(t *T) {
		post := t.RequireRecord(t.RequireCreatedPost())
		id := servicedef.RecordID(post)
		require.True(t, id.IsDefined(), "Response does not contain 'id': %s", post)
		t.AssertStatus(t.DeletePost(id.IntValue()), http.StatusOK)
	})

	t.Run("delete nonexistent post returns 404", func(t *T) {
		t.AssertStatus(t.DeletePost(t.NonexistentID()), http.StatusNotFound)
	})
}
