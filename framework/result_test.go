package framework

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"

	"github.com/stretchr/testify/assert"
)

func withoutColor(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })
}

func TestTestIDPlusDoesNotShareStorage(t *testing.T) {
	parent := TestID{Path: make([]string, 1, 10)}
	parent.Path[0] = "a"
	b := parent.Plus("b")
	c := parent.Plus("c")
	assert.Equal(t, "a/b", b.String())
	assert.Equal(t, "a/c", c.String())
}

func TestPrintResultsWhenAllPassed(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	PrintResults(&buf, Results{Tests: []TestResult{{TestID: TestID{Path: []string{"a"}}}, {Skipped: true}}})
	assert.Equal(t, "All tests passed (1 passed, 1 skipped)\n", buf.String())
}

func TestPrintResultsWhenNothingRan(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	PrintResults(&buf, Results{Tests: []TestResult{{TestID: TestID{Path: []string{"a"}}, Skipped: true}}})
	assert.Equal(t, "No tests were run (1 skipped)\n", buf.String())
}

func TestPrintResultsWithFailures(t *testing.T) {
	withoutColor(t)
	failure := TestResult{
		TestID: TestID{Path: []string{"get", "x"}},
		Errors: []error{errors.New("\n\tError Trace:\tapi.go:12\n\t            \tother.go:3\n\tError:      \tNot equal\n\tMessages:   \tExpected status code 404, but got 200")},
	}
	aborted := TestResult{TestID: TestID{Path: []string{"get", "y"}}, Errors: []error{errors.New("connection refused")}, Aborted: true}
	results := Results{
		Tests:    []TestResult{failure, aborted, {TestID: TestID{Path: []string{"get", "z"}}}},
		Failures: []TestResult{failure, aborted},
	}

	var buf bytes.Buffer
	PrintResults(&buf, results)
	assert.Equal(t, `FAILED TESTS (2):
  FAILED: get/x
      Error:      	Not equal
      Messages:   	Expected status code 404, but got 200
  ERROR: get/y
      connection refused
1 passed, 1 failed, 1 errors, 0 skipped
`, buf.String())
}
