package strata

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Engine resolves templates by name through a [Loader]. It optionally
// memoizes resolved templates and logs orphan-block advisories; the
// underlying [Resolve] stays pure, the engine owns all shared state.
type Engine struct {
	loader Loader
	log    zerolog.Logger

	mu    sync.RWMutex
	cache map[string]*Template
}

// Config holds engine configuration. Values are set through [Option]
// functions passed to [New].
type Config struct {
	log   optionVal[zerolog.Logger]
	cache optionVal[bool]
}

// Option is a configuration option for the engine.
type Option func(*Config)

// WithLogger sets the logger used to report orphan-block advisories.
// Without it advisories are dropped silently.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Config) { c.log = newVal(log) }
}

// WithCache memoizes resolved templates by name, so repeated renders of
// the same template skip chain resolution. Cached templates are shared;
// callers must treat them as read-only.
func WithCache() Option {
	return func(c *Config) { c.cache = newVal(true) }
}

// New creates a new engine on top of the loader.
func New(loader Loader, options ...Option) (*Engine, error) {
	if loader == nil {
		return nil, errors.New("error creating new engine: nil loader")
	}

	var c Config
	for _, opt := range options {
		opt(&c)
	}

	e := &Engine{
		loader: loader,
		log:    zerolog.Nop(),
	}
	if c.log.set {
		e.log = c.log.val
	}
	if c.cache.set && c.cache.val {
		e.cache = map[string]*Template{}
	}
	return e, nil
}

// Must is a helper to use with New; it panics on error.
//
//	engine := strata.Must(strata.New(loader))
func Must(e *Engine, err error) *Engine {
	if err != nil {
		panic(err)
	}
	return e
}

// Resolve loads the named template and flattens its extends chain.
// Orphan-block advisories are logged, not returned; callers that need the
// advisories programmatically use [Resolve] directly.
func (e *Engine) Resolve(name string) (*Template, error) {
	if e.cache != nil {
		e.mu.RLock()
		t, ok := e.cache[name]
		e.mu.RUnlock()
		if ok {
			return t, nil
		}
	}

	t, err := e.loader.Load(name)
	if err != nil {
		return nil, fmt.Errorf("error loading '%s': %w", name, err)
	}

	resolved, orphans, err := Resolve(t, e.loader)
	if err != nil {
		return nil, fmt.Errorf("error resolving '%s': %w", name, err)
	}
	for _, o := range orphans {
		e.log.Warn().
			Str("template", o.Template).
			Str("block", o.Block).
			Msg("orphan block dropped")
	}

	if e.cache != nil {
		e.mu.Lock()
		e.cache[name] = resolved
		e.mu.Unlock()
	}
	return resolved, nil
}

type optionVal[T any] struct {
	val T
	set bool
}

func newVal[T any](val T) optionVal[T] {
	return optionVal[T]{val: val, set: true}
}
