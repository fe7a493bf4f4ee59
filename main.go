package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/launchdarkly/posts-contract-tests/framework"
	"github.com/launchdarkly/posts-contract-tests/poststests"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}
	cfg := params.config

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}

	if err := framework.AwaitService(cfg.ServiceURL, httpClient, cfg.StatusQueryTimeout, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Service error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: cfg.Debug || cfg.DebugAll,
		DebugOutputOnSuccess: cfg.DebugAll,
	}
	probe := framework.NewProbe(framework.ProbeConfig{
		BaseURL:         cfg.ServiceURL,
		HTTPClient:      httpClient,
		LogCurlCommands: cfg.Curl,
	})

	results := poststests.RunTestSuite(probe, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		os.Exit(1)
	}
}
