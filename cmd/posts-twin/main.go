// Command posts-twin serves an in-process fake of the posts service, so that the contract tests
// can be run without network access:
//
//	posts-twin -port 8080 &
//	posts-contract-tests -url http://localhost:8080/posts
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/launchdarkly/posts-contract-tests/poststwin"
)

const shutdownTimeout = time.Second * 10

type options struct {
	port    int
	posts   int
	mode    poststwin.Mode
	verbose bool
}

func parseOptions(args []string) (options, error) {
	var o options
	var mode string

	fs := flag.NewFlagSet("posts-twin", flag.ContinueOnError)
	fs.IntVar(&o.port, "port", 8080, "HTTP listen port")
	fs.IntVar(&o.posts, "posts", poststwin.DefaultPostCount, "number of posts to start with (may be 0)")
	fs.StringVar(&mode, "mode", string(poststwin.ModeStrict), `"strict" (404 for unknown ids) or "echo" (imitates the public mock)`)
	fs.BoolVar(&o.verbose, "verbose", false, "log every request")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() != 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	var err error
	if o.mode, err = poststwin.ParseMode(mode); err != nil {
		return o, err
	}
	if o.posts < 0 {
		return o, errors.New("-posts must not be negative")
	}
	return o, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	twin := poststwin.New(poststwin.Config{Mode: opts.mode, Posts: ldvalue.NewOptionalInt(opts.posts), Logger: logger})
	addr := fmt.Sprintf(":%d", opts.port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           twin,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting posts twin", "addr", addr, "mode", opts.mode, "posts", twin.Store().Count())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down posts twin")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
		os.Exit(1)
	}
}
