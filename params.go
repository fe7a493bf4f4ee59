package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/launchdarkly/posts-contract-tests/config"
	"github.com/launchdarkly/posts-contract-tests/framework"
)

type commandParams struct {
	configFile string
	config     config.Config
	filters    framework.RegexFilters
}

func (c *commandParams) Read(args []string) bool {
	var flagValues config.Config

	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.configFile, "config", "", "YAML file with runner settings (flags override it)")
	fs.StringVar(&flagValues.ServiceURL, "url", config.DefaultServiceURL, "URL of the posts collection")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run, matched level by level like go test -run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.DurationVar(&flagValues.RequestTimeout, "timeout", 0, "timeout for each request (default none)")
	fs.DurationVar(&flagValues.StatusQueryTimeout, "status-timeout", config.DefaultStatusQueryTimeout,
		"how long to wait for the service to respond before running tests")
	fs.BoolVar(&flagValues.Debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&flagValues.DebugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&flagValues.Curl, "curl", false, "include equivalent curl commands in debug logging")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}

	cfg := config.Default()
	if c.configFile != "" {
		var err error
		if cfg, err = config.Load(c.configFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return false
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			cfg.ServiceURL = flagValues.ServiceURL
		case "timeout":
			cfg.RequestTimeout = flagValues.RequestTimeout
		case "status-timeout":
			cfg.StatusQueryTimeout = flagValues.StatusQueryTimeout
		case "debug":
			cfg.Debug = flagValues.Debug
		case "debug-all":
			cfg.DebugAll = flagValues.DebugAll
		case "curl":
			cfg.Curl = flagValues.Curl
		}
	})
	for _, p := range cfg.Run {
		if err := c.filters.MustMatch.Set(p); err != nil {
			fmt.Fprintf(os.Stderr, "invalid run pattern in %s: %s\n", c.configFile, err)
			return false
		}
	}
	for _, p := range cfg.Skip {
		if err := c.filters.MustNotMatch.Set(p); err != nil {
			fmt.Fprintf(os.Stderr, "invalid skip pattern in %s: %s\n", c.configFile, err)
			return false
		}
	}

	if cfg.ServiceURL == "" {
		fmt.Fprintln(os.Stderr, "-url must not be empty")
		fs.Usage()
		return false
	}
	c.config = cfg
	return true
}
