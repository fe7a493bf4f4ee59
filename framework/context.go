package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the framework's equivalent of *testing.T. It implements require.TestingT, so
// assertions from the testify assert and require packages can be used with it directly.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	aborted     bool
	skipped     bool
	skipReason  string
	errors      []error
	cleanups    []func()
	hasSubtests bool
}

// Run runs the root test action and returns the accumulated results of it and all of its
// subtests.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil && !c.skipped {
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				c.aborted = true
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		c.runCleanups()
		if len(c.id.Path) == 0 {
			return // the root context is not a test in itself
		}
		if c.hasSubtests && !c.failed {
			return // a group is only a test if something went wrong outside its subtests
		}
		result := TestResult{TestID: c.id, Errors: c.errors, Skipped: c.skipped, Aborted: c.aborted}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed && !c.skipped {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

func (c *Context) runCleanups() {
	for i := len(c.cleanups) - 1; i >= 0; i-- {
		c.cleanups[i]()
	}
	c.cleanups = nil
}

func (c *Context) outcome() Outcome {
	switch {
	case c.aborted:
		return Errored
	case c.failed:
		return Failed
	default:
		return Passed
	}
}

// ID returns the identifier of this test.
func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest. Failures in the subtest do not affect the status of the parent.
//
// A test that has subtests only appears in the Results if it fails on its own account.
func (c *Context) Run(name string, action func(*Context)) {
	id := c.id.Plus(name)
	c.hasSubtests = true

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.results.Tests = append(c.env.results.Tests, TestResult{TestID: id, Skipped: true})
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.outcome(), c1.debugLogger.Output())
	}
}

// Errorf records a test failure. It does not cause an immediate exit.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

// FailNow causes the test to exit immediately. It is called by the require package.
func (c *Context) FailNow() {
	panic(c)
}

// Abort records an error that prevented the test from completing, such as a network failure,
// and exits the test. Aborted tests are reported separately from assertion failures.
func (c *Context) Abort(err error) {
	c.failed = true
	c.aborted = true
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Defer schedules a function to be called when the test ends, whether or not it failed.
// Deferred functions run in reverse order of registration.
func (c *Context) Defer(fn func()) {
	c.cleanups = append(c.cleanups, fn)
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
