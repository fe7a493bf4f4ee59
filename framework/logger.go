package framework

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

func NullLogger() Logger { return nullLogger{} }

type prefixLogger struct {
	base   Logger
	prefix string
}

// PrefixLogger returns a Logger that adds the prefix to every message before passing it on.
// The Probe uses it to tell the requests within one test apart.
func PrefixLogger(base Logger, prefix string) Logger {
	if base == nil {
		return NullLogger()
	}
	return prefixLogger{base: base, prefix: prefix}
}

func (p prefixLogger) Printf(message string, args ...interface{}) {
	p.base.Printf("%s%s", p.prefix, fmt.Sprintf(message, args...))
}

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger accumulates log output for a single test so that it can be shown only if
// the test fails.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Dump writes each message on its own line after the prefix and a timestamp. Continuation lines
// of a multi-line message, such as a pretty-printed response body, are indented to line up
// with the first line.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		stamp := fmt.Sprintf("%s[%s] ", prefix, m.Time.Format(timestampFormat))
		indent := strings.Repeat(" ", len(stamp))
		for i, line := range strings.Split(strings.TrimRight(m.Message, "\n"), "\n") {
			if i == 0 {
				fmt.Fprintf(dest, "%s%s\n", stamp, line)
			} else {
				fmt.Fprintf(dest, "%s%s\n", indent, line)
			}
		}
	}
}
