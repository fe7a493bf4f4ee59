package poststests

import (
	"net/http/httptest"
	"os"
	"regexp"
	"sort"
	"testing"

	"github.com/launchdarkly/posts-contract-tests/framework"
	"github.com/launchdarkly/posts-contract-tests/poststwin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const leafTestCount = 23

func runAgainstTwin(t *testing.T, mode poststwin.Mode, filter framework.Filter) framework.Results {
	srv := httptest.NewServer(poststwin.New(poststwin.Config{Mode: mode}))
	defer srv.Close()
	probe := framework.NewProbe(framework.ProbeConfig{BaseURL: srv.URL + "/posts"})
	return RunTestSuite(probe, filter, nil)
}

func failureIDs(results framework.Results) []string {
	var ids []string
	for _, f := range results.Failures {
		ids = append(ids, f.TestID.String())
	}
	sort.Strings(ids)
	return ids
}

func leafResults(results framework.Results) []framework.TestResult {
	var ret []framework.TestResult
	for _, r := range results.Tests {
		if len(r.TestID.Path) > 1 {
			ret = append(ret, r)
		}
	}
	return ret
}

func TestSuitePassesAgainstStrictTwin(t *testing.T) {
	results := runAgainstTwin(t, poststwin.ModeStrict, nil)
	assert.Empty(t, failureIDs(results))
	assert.True(t, results.OK())
	assert.Len(t, leafResults(results), leafTestCount)

	passed, failed, aborted, skipped := results.Counts()
	assert.Equal(t, []int{leafTestCount, 0, 0, 0}, []int{passed, failed, aborted, skipped})
}

func TestSuiteReportsEchoTwinDeviations(t *testing.T) {
	results := runAgainstTwin(t, poststwin.ModeEcho, nil)
	assert.Equal(t, []string{
		"delete/delete nonexistent post returns 404",
		"update/full update of nonexistent post returns 404",
		"update/partial update of nonexistent post returns 404",
	}, failureIDs(results))
	for _, f := range results.Failures {
		assert.False(t, f.Aborted)
		require.NotEmpty(t, f.Errors)
	}
}

func TestSuiteHonorsFilter(t *testing.T) {
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("^create"))
	require.NoError(t, filters.MustNotMatch.Set("without (title|body|userId)$"))

	results := runAgainstTwin(t, poststwin.ModeStrict, filters.AsFilter)
	assert.True(t, results.OK())

	ran := regexp.MustCompile(`^create/`)
	var ranIDs []string
	for _, r := range leafResults(results) {
		if !r.Skipped {
			assert.Regexp(t, ran, r.TestID.String())
			ranIDs = append(ranIDs, r.TestID.String())
		}
	}
	assert.Contains(t, ranIDs, "create/succeeds without request body")
	assert.NotContains(t, ranIDs, "create/succeeds without title")

	passed, _, _, skipped := results.Counts()
	assert.Equal(t, 6, passed)
	assert.Equal(t, 3+3, skipped) // get, update, delete groups plus three "without <field>" cases
}

func TestSuiteRunsTestsSelectedByLeafName(t *testing.T) {
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("/nonexistent"))

	results := runAgainstTwin(t, poststwin.ModeStrict, filters.AsFilter)
	assert.True(t, results.OK())

	var ranIDs []string
	for _, r := range leafResults(results) {
		if !r.Skipped {
			ranIDs = append(ranIDs, r.TestID.String())
		}
	}
	sort.Strings(ranIDs)
	assert.Equal(t, []string{
		"delete/delete nonexistent post returns 404",
		"get/nonexistent post returns 404",
		"update/full update of nonexistent post returns 404",
		"update/partial update of nonexistent post returns 404",
	}, ranIDs)

	passed, _, _, skipped := results.Counts()
	assert.Equal(t, 4, passed)
	assert.Equal(t, leafTestCount-4, skipped)
}

func TestSuiteRunsSingleTestByFullName(t *testing.T) {
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("^get$/^get by id matches listing$"))

	results := runAgainstTwin(t, poststwin.ModeStrict, filters.AsFilter)
	passed, _, _, skipped := results.Counts()
	assert.Equal(t, 1, passed)
	assert.Equal(t, 3+3, skipped) // create, update, delete groups plus the other get tests
}

func TestSuiteAbortsTestsWhenServiceIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(poststwin.New(poststwin.Config{}))
	url := srv.URL + "/posts"
	srv.Close()

	results := RunTestSuite(framework.NewProbe(framework.ProbeConfig{BaseURL: url}), nil, nil)
	require.False(t, results.OK())
	for _, f := range results.Failures {
		if len(f.TestID.Path) > 1 {
			assert.True(t, f.Aborted, f.TestID.String())
		}
	}
	_, failed, aborted, _ := results.Counts()
	assert.Equal(t, 0, failed)
	assert.Equal(t, leafTestCount, aborted)
}

// TestSuiteAgainstLiveService runs the suite against a real deployment of the service when
// POSTS_SERVICE_URL is set, for instance to https://jsonplaceholder.typicode.com/posts.
func TestSuiteAgainstLiveService(t *testing.T) {
	url := os.Getenv("POSTS_SERVICE_URL")
	if url == "" {
		t.Skip("POSTS_SERVICE_URL is not set")
	}
	results := RunTestSuite(framework.NewProbe(framework.ProbeConfig{BaseURL: url}), nil, nil)
	for _, f := range results.Failures {
		for _, err := range f.Errors {
			t.Logf("%s: %s", f.TestID, err)
		}
	}
}
