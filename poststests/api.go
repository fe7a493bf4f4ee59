package poststests

import (
	"net/http"

	"github.com/launchdarkly/posts-contract-tests/framework"
	"github.com/launchdarkly/posts-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// T represents a test or subtest in the posts contract test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner, and with some extra features such as debug logging that are
// convenient for our use case. Those features are provided by the lower-level framework package.
//
// It also provides methods for calling the service under test. Every request and response is
// written to the test's debug output. To make test assertions, use the assert and require
// packages, passing the *T as if it were a *testing.T. The request methods have assertions
// built in where a failure would make the rest of the test meaningless.
type T struct {
	context *framework.Context
	probe   *framework.Probe
}

func newTestScope(context *framework.Context, probe *framework.Probe) *T {
	return &T{
		context: context,
		probe:   probe.WithLogger(context.DebugLogger()),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// ID returns the identifier of the current test.
func (t *T) ID() framework.TestID {
	return t.context.ID()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.probe))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Defer schedules a function to run when the test ends.
func (t *T) Defer(fn func()) {
	t.context.Defer(fn)
}

// Send makes one request to the service. If the request cannot be made at all, the test is
// aborted with an error; any HTTP response, whatever its status, is returned.
func (t *T) Send(req framework.ProbeRequest) *framework.ProbeResponse {
	resp, err := t.probe.Do(req)
	if err != nil {
		t.context.Abort(err)
	}
	return resp
}

func (t *T) GetPosts() *framework.ProbeResponse {
	return t.Send(framework.ProbeRequest{Method: http.MethodGet})
}

func (t *T) GetPost(id int) *framework.ProbeResponse {
	return t.Send(framework.ProbeRequest{Method: http.MethodGet, ID: ldvalue.NewOptionalInt(id)})
}

// CreatePost sends a POST to the collection. A nil body sends no request body at all.
func (t *T) CreatePost(body interface{}) *framework.ProbeResponse {
	return t.Send(framework.ProbeRequest{Method: http.MethodPost, Body: body})
}

func (t *T) ReplacePost(id int, body interface{}) *framework.ProbeResponse {
	return t.Send(framework.ProbeRequest{Method: http.MethodPut, ID: ldvalue.NewOptionalInt(id), Body: body})
}

func (t *T) UpdatePost(id int, body interface{}) *framework.ProbeResponse {
	return t.Send(framework.ProbeRequest{Method: http.MethodPatch, ID: ldvalue.NewOptionalInt(id), Body: body})
}

func (t *T) DeletePost(id int) *framework.ProbeResponse {
	return t.Send(framework.ProbeRequest{Method: http.MethodDelete, ID: ldvalue.NewOptionalInt(id)})
}

// AssertStatus checks the response status without stopping the test.
func (t *T) AssertStatus(resp *framework.ProbeResponse, expected int) bool {
	return assert.Equal(t, expected, resp.StatusCode,
		"Expected status code %d, but got %d", expected, resp.StatusCode)
}

// RequireStatus checks the response status and exits the test if it is wrong.
func (t *T) RequireStatus(resp *framework.ProbeResponse, expected int) {
	if !t.AssertStatus(resp, expected) {
		t.FailNow()
	}
}

// RequireJSON parses the response body, and exits the test if it is not valid JSON.
func (t *T) RequireJSON(resp *framework.ProbeResponse) ldvalue.Value {
	v, err := resp.JSON()
	require.NoError(t, err)
	return v
}

// RequireRecord parses the response body, and exits the test if it is not a JSON object.
func (t *T) RequireRecord(resp *framework.ProbeResponse) ldvalue.Value {
	v := t.RequireJSON(resp)
	require.Equal(t, ldvalue.ObjectType, v.Type(), "Expected a JSON object, but got: %s", v)
	return v
}

// RequireListing fetches all posts, and exits the test unless the service returns a non-empty
// JSON array with status 200. Tests use it to find ids to work with.
func (t *T) RequireListing() ldvalue.Value {
	resp := t.GetPosts()
	t.RequireStatus(resp, http.StatusOK)
	v := t.RequireJSON(resp)
	require.Equal(t, ldvalue.ArrayType, v.Type(), "Expected a JSON array of posts, but got: %s", v)
	require.NotEqual(t, 0, v.Count(), "Service returned an empty list of posts")
	return v
}

// RequireFirstPost returns the first post in the listing. The test exits if it has no id.
func (t *T) RequireFirstPost() (int, ldvalue.Value) {
	post := t.RequireListing().GetByIndex(0)
	id := servicedef.RecordID(post)
	require.True(t, id.IsDefined(), "First post in the listing has no integer id: %s", post)
	return id.IntValue(), post
}

// NonexistentID returns an id that the service is assumed not to have: one greater than the
// greatest id in the listing.
func (t *T) NonexistentID() int {
	id := servicedef.NonexistentID(t.RequireListing())
	t.Debug("Using %d as a nonexistent post id", id)
	return id
}

// RequireCreatedPost creates a post from a fresh template and returns the response, exiting the
// test if the post was not created.
func (t *T) RequireCreatedPost() *framework.ProbeResponse {
	resp := t.CreatePost(servicedef.NewPostTemplate())
	t.RequireStatus(resp, http.StatusCreated)
	return resp
}
