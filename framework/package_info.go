// Package framework contains the low-level implementation of the contract test harness that
// does not depend on the kind of resource being tested.
//
// The general model is:
//
// 1. The service under test is an external HTTP service that the harness does not control.
// It is reached only through a Probe, which sends one request and returns the raw response.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. It implements require.TestingT, so testify assertions work on it.
//
// 3. Every test has its own debug logger, whose output is only shown for failed tests unless
// the caller asks for more.
//
// The domain-specific code that knows what is being tested is responsible for deciding which
// requests to send and what to expect from them.
package framework
