// Package poststwin is an in-process fake of the posts service, for running the contract tests
// without network access and for verifying the tests themselves.
//
// In ModeStrict it implements the contract that the tests expect. In ModeEcho it imitates the
// public mock service, which accepts writes without persisting them and does not report
// missing posts on every kind of request.
package poststwin

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultPostCount is the number of posts that a twin starts with unless configured otherwise.
const DefaultPostCount = 100

// Mode selects how the twin treats writes and unknown ids.
type Mode string

const (
	// ModeStrict persists writes and answers 404 for any request about an unknown id.
	ModeStrict Mode = "strict"

	// ModeEcho echoes writes without persisting them. DELETE always succeeds, PATCH of an
	// unknown id succeeds, and PUT of an unknown id is a server error.
	ModeEcho Mode = "echo"
)

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStrict, ModeEcho:
		return Mode(s), nil
	case "":
		return ModeStrict, nil
	default:
		return "", fmt.Errorf("unknown twin mode %q (expected %q or %q)", s, ModeStrict, ModeEcho)
	}
}

// Config contains the parameters for New.
type Config struct {
	Mode   Mode
	Posts  ldvalue.OptionalInt // number of seeded posts; DefaultPostCount if undefined
	Logger *slog.Logger
}

// Twin serves the posts resource under the path "/posts".
type Twin struct {
	store  *Store
	mode   Mode
	logger *slog.Logger
	router chi.Router
}

// New creates a Twin.
func New(config Config) *Twin {
	if config.Mode == "" {
		config.Mode = ModeStrict
	}
	posts := config.Posts.OrElse(DefaultPostCount)
	if posts < 0 {
		posts = 0
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	t := &Twin{
		store:  NewStore(posts),
		mode:   config.Mode,
		logger: config.Logger,
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(t.requestLog)
	r.Route("/posts", func(r chi.Router) {
		r.Get("/", t.listPosts)
		r.Post("/", t.createPost)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", t.getPost)
			r.Put("/", t.replacePost)
			r.Patch("/", t.updatePost)
			r.Delete("/", t.deletePost)
		})
	})
	t.router = r
	return t
}

// Mode returns the mode the twin was created with.
func (t *Twin) Mode() Mode {
	return t.mode
}

// Store returns the twin's record store.
func (t *Twin) Store() *Store {
	return t.store
}

// ServeHTTP implements http.Handler so a Twin can be used directly with httptest.
func (t *Twin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t.router.ServeHTTP(w, r)
}

func (t *Twin) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		t.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
