package framework

// Outcome describes how a test that was not skipped ended.
type Outcome int

const (
	Passed Outcome = iota
	Failed
	// Errored means the test could not complete, for instance because of a network error or an
	// unexpected panic, rather than because an assertion failed.
	Errored
)

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "PASSED"
	case Failed:
		return "FAILED"
	default:
		return "ERROR"
	}
}

type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, outcome Outcome, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                           {}
func (n nullTestLogger) TestError(TestID, error)                      {}
func (n nullTestLogger) TestFinished(TestID, Outcome, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                   {}
