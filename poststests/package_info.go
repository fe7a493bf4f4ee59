// Package poststests contains the posts contract tests themselves and their supporting API.
//
// Test harness infrastructure that is not specific to posts, such as the test context, filters,
// and the probe that sends requests to the service, is in the lower-level framework package.
package poststests
