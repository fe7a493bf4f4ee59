package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
	Aborted bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Counts returns the number of tests that passed, failed, were aborted by an error, and were
// skipped.
func (r Results) Counts() (passed, failed, aborted, skipped int) {
	for _, t := range r.Tests {
		if t.Skipped {
			skipped++
		}
	}
	for _, f := range r.Failures {
		if f.Aborted {
			aborted++
		} else {
			failed++
		}
	}
	passed = len(r.Tests) - skipped - failed - aborted
	return
}

type TestID struct {
	Path []string
}

// Plus returns a new TestID for a subtest of this one.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// PrintResults writes a summary of the test run, including every failed test and its errors.
func PrintResults(out io.Writer, results Results) {
	passed, failed, aborted, skipped := results.Counts()
	failColor := color.New(color.FgRed, color.Bold)
	errColor := color.New(color.FgYellow, color.Bold)

	if results.OK() && passed == 0 {
		color.New(color.FgYellow, color.Bold).Fprintf(out, "No tests were run")
		fmt.Fprintf(out, " (%d skipped)\n", skipped)
		return
	}
	if results.OK() {
		color.New(color.FgGreen, color.Bold).Fprintf(out, "All tests passed")
		fmt.Fprintf(out, " (%d passed, %d skipped)\n", passed, skipped)
		return
	}
	failColor.Fprintf(out, "FAILED TESTS (%d):\n", len(results.Failures))
	for _, f := range results.Failures {
		label, c := "FAILED", failColor
		if f.Aborted {
			label, c = "ERROR", errColor
		}
		c.Fprintf(out, "  %s: ", label)
		fmt.Fprintln(out, f.TestID)
		for _, e := range f.Errors {
			for _, line := range strings.Split(reformatError(e).Error(), "\n") {
				fmt.Fprintf(out, "      %s\n", line)
			}
		}
	}
	fmt.Fprintf(out, "%d passed, %d failed, %d errors, %d skipped\n", passed, failed, aborted, skipped)
}

// reformatError strips the "Error Trace" block that testify adds to assertion messages, since
// it only points into the framework, and removes the leading indentation.
func reformatError(err error) error {
	lines := strings.Split(err.Error(), "\n")
	var kept []string
	inTrace := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "Error Trace:") {
			inTrace = true
			continue
		}
		if inTrace {
			if !strings.HasPrefix(trimmed, "Error:") {
				continue
			}
			inTrace = false
		}
		kept = append(kept, trimmed)
	}
	if len(kept) == 0 {
		return err
	}
	return fmt.Errorf("%s", strings.Join(kept, "\n"))
}
