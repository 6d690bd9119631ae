package location

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeout = 15000 * time.Millisecond
	DefaultMaxAge  = 60000 * time.Millisecond
)

// Source is the platform position service.
type Source interface {
	Name() string
	CurrentPosition(ctx context.Context) (Coordinate, error)
}

type FixCache interface {
	Get(source string, maxAge time.Duration) (Fix, bool)
	Set(source string, fix Fix)
}

type Resolver interface {
	Resolve(ctx context.Context) (Coordinate, error)
}

type Options struct {
	Timeout time.Duration
	MaxAge  time.Duration
}

type resolver struct {
	source Source
	cache  FixCache
	opts   Options
}

func NewResolver(source Source, cache FixCache, opts Options) Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxAge < 0 {
		opts.MaxAge = 0
	}

	return &resolver{
		source: source,
		cache:  cache,
		opts:   opts,
	}
}

func (r *resolver) Resolve(ctx context.Context) (Coordinate, error) {
	if r.cache != nil {
		if fix, ok := r.cache.Get(r.source.Name(), r.opts.MaxAge); ok {
			log.Debug().
				Str("source", r.source.Name()).
				Time("obtained_at", fix.Timestamp).
				Msg("reusing cached position")
			return fix.Coordinate, nil
		}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	coord, err := r.source.CurrentPosition(timeoutCtx)
	if err != nil {
		return Coordinate{}, r.classify(timeoutCtx, err)
	}

	if err := coord.Validate(); err != nil {
		return Coordinate{}, &Error{Code: PositionUnavailable, Err: err}
	}

	if r.cache != nil {
		r.cache.Set(r.source.Name(), Fix{Coordinate: coord, Timestamp: time.Now()})
	}

	return coord, nil
}

func (r *resolver) classify(ctx context.Context, err error) error {
	var locErr *Error
	if errors.As(err, &locErr) {
		return locErr
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Code: Timeout, Err: err}
	}

	return &Error{Code: PositionUnavailable, Err: err}
}
