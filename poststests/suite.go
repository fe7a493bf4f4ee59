package poststests

import (
	"github.com/launchdarkly/posts-contract-tests/framework"
)

// RunTestSuite runs every posts contract test against the service reached by the probe.
func RunTestSuite(
	probe *framework.Probe,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, probe)

		t.Run("create", DoCreateTests)
		t.Run("get", DoGetTests)
		t.Run("update", DoUpdateTests)
		t.Run("delete", DoDeleteTests)
	})
}
