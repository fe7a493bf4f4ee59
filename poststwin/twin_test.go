package poststwin

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/launchdarkly/posts-contract-tests/servicedef"
)

func startTwin(t *testing.T, mode Mode) (*Twin, *httptest.Server) {
	t.Helper()
	twin := New(Config{Mode: mode, Posts: ldvalue.NewOptionalInt(10)})
	srv := httptest.NewServer(twin)
	t.Cleanup(srv.Close)
	return twin, srv
}

func send(t *testing.T, method, url string, body string) (int, ldvalue.Value) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var v ldvalue.Value
	require.NoError(t, json.Unmarshal(data, &v), "body was: %s", data)
	return resp.StatusCode, v
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeStrict, m)

	m, err = ParseMode("echo")
	require.NoError(t, err)
	assert.Equal(t, ModeEcho, m)

	_, err = ParseMode("lenient")
	assert.Error(t, err)
}

func TestNewUsesDefaults(t *testing.T) {
	twin := New(Config{})
	assert.Equal(t, ModeStrict, twin.Mode())
	assert.Equal(t, DefaultPostCount, twin.Store().Count())
}

func TestNewWithNoPosts(t *testing.T) {
	twin := New(Config{Posts: ldvalue.NewOptionalInt(0)})
	assert.Equal(t, 0, twin.Store().Count())

	srv := httptest.NewServer(twin)
	defer srv.Close()
	status, list := send(t, "GET", srv.URL+"/posts", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, ldvalue.ArrayType, list.Type())
	assert.Equal(t, 0, list.Count())
}

func TestListPosts(t *testing.T) {
	_, srv := startTwin(t, ModeStrict)

	status, list := send(t, "GET", srv.URL+"/posts", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, 10, list.Count())

	status, list = send(t, "GET", srv.URL+"/posts?userId=1", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, 10, list.Count())

	status, list = send(t, "GET", srv.URL+"/posts?userId=2", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, 0, list.Count())
}

func TestGetPost(t *testing.T) {
	twin, srv := startTwin(t, ModeStrict)

	status, post := send(t, "GET", srv.URL+"/posts/3", "")
	assert.Equal(t, 200, status)
	expected, _ := twin.Store().Get(3)
	assert.True(t, expected.Equal(post))

	for _, path := range []string{"/posts/11", "/posts/abc"} {
		status, _ = send(t, "GET", srv.URL+path, "")
		assert.Equal(t, 404, status, path)
	}
}

func TestCreatePost(t *testing.T) {
	for _, mode := range []Mode{ModeStrict, ModeEcho} {
		t.Run(string(mode), func(t *testing.T) {
			twin, srv := startTwin(t, mode)

			status, post := send(t, "POST", srv.URL+"/posts", `{"title":"t","userId":1}`)
			assert.Equal(t, 201, status)
			assert.True(t, ldvalue.Parse([]byte(`{"id":11,"title":"t","userId":1}`)).Equal(post), "got %s", post)

			_, persisted := twin.Store().Get(11)
			assert.Equal(t, mode == ModeStrict, persisted)
		})
	}
}

func TestCreatePostWithoutBody(t *testing.T) {
	_, srv := startTwin(t, ModeStrict)

	status, post := send(t, "POST", srv.URL+"/posts", "")
	assert.Equal(t, 201, status)
	assert.Equal(t, 11, post.GetByKey(servicedef.FieldID).IntValue())
}

func TestCreatePostWithInvalidBody(t *testing.T) {
	_, srv := startTwin(t, ModeStrict)

	for _, body := range []string{`[1,2]`, `{bad`} {
		status, resp := send(t, "POST", srv.URL+"/posts", body)
		assert.Equal(t, 400, status, body)
		assert.NotEqual(t, "", resp.GetByKey("error").StringValue())
	}
}

func TestStrictModeWrites(t *testing.T) {
	twin, srv := startTwin(t, ModeStrict)

	status, post := send(t, "PUT", srv.URL+"/posts/2", `{"id":2,"title":"new"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "new", post.GetByKey(servicedef.FieldTitle).StringValue())
	stored, _ := twin.Store().Get(2)
	assert.True(t, stored.Equal(post))

	status, post = send(t, "PATCH", srv.URL+"/posts/3", `{"title":"patched"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "patched", post.GetByKey(servicedef.FieldTitle).StringValue())
	assert.Equal(t, "body of post 3", post.GetByKey(servicedef.FieldBody).StringValue())

	status, _ = send(t, "DELETE", srv.URL+"/posts/4", "")
	assert.Equal(t, 200, status)
	_, exists := twin.Store().Get(4)
	assert.False(t, exists)
}

func TestStrictModeUnknownIDs(t *testing.T) {
	_, srv := startTwin(t, ModeStrict)

	for _, method := range []string{"GET", "PUT", "PATCH", "DELETE"} {
		status, _ := send(t, method, srv.URL+"/posts/11", `{"title":"x"}`)
		assert.Equal(t, 404, status, method)
	}
}

func TestEchoModeDoesNotPersist(t *testing.T) {
	twin, srv := startTwin(t, ModeEcho)
	before, _ := twin.Store().Get(2)

	status, post := send(t, "PATCH", srv.URL+"/posts/2", `{"title":"patched"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "patched", post.GetByKey(servicedef.FieldTitle).StringValue())

	status, _ = send(t, "PUT", srv.URL+"/posts/2", `{"title":"new"}`)
	assert.Equal(t, 200, status)

	status, _ = send(t, "DELETE", srv.URL+"/posts/2", "")
	assert.Equal(t, 200, status)

	after, ok := twin.Store().Get(2)
	require.True(t, ok)
	assert.True(t, before.Equal(after))
}

func TestEchoModeUnknownIDs(t *testing.T) {
	_, srv := startTwin(t, ModeEcho)

	status, _ := send(t, "GET", srv.URL+"/posts/11", "")
	assert.Equal(t, 404, status)

	status, _ = send(t, "PUT", srv.URL+"/posts/11", `{"title":"x"}`)
	assert.Equal(t, 500, status)

	status, post := send(t, "PATCH", srv.URL+"/posts/11", `{"title":"x"}`)
	assert.Equal(t, 200, status)
	assert.True(t, ldvalue.Parse([]byte(`{"id":11,"title":"x"}`)).Equal(post), "got %s", post)

	status, _ = send(t, "DELETE", srv.URL+"/posts/11", "")
	assert.Equal(t, 200, status)
}
