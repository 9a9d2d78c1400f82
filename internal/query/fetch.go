package query

import (
	"context"
	"time"
)

// Options describes one query read.
type Options[T any] struct {
	// Key identifies the entry.
	Key Key

	// Fn produces fresh data. It receives a context that carries the
	// caller's values but not its cancellation: a fetch abandoned by its
	// caller still completes and is cached under its own key.
	Fn func(ctx context.Context) (T, error)

	// StaleTime is how long stored data is served without refetching.
	// Zero means the client default; negative means always refetch.
	StaleTime time.Duration

	// InitialData seeds an entry that has no data yet, instead of fetching.
	// The seed is stored as if it had just been fetched.
	InitialData *T
}

// Fetch returns the data for opts.Key. Fresh cached data is returned without
// calling opts.Fn. Otherwise opts.Fn runs once for all concurrent callers of
// the key and its result is cached. On failure previously cached data is kept
// and the error is returned.
//
// If ctx ends before the shared fetch completes, Fetch returns ctx.Err() and
// the fetch carries on in the background.
func Fetch[T any](ctx context.Context, c *Client, opts Options[T]) (T, error) {
	var zero T
	if opts.Fn == nil {
		return zero, ErrNoFetcher
	}

	staleTime := opts.StaleTime
	if staleTime == 0 {
		staleTime = c.defaultStale
	}

	id := opts.Key.String()

	c.mu.Lock()
	e := c.entryLocked(opts.Key)
	now := c.clock.Now()
	e.lastAccess = now

	if !e.hasData && opts.InitialData != nil {
		e.seq++
		e.storedSeq = e.seq
		c.storeLocked(e, *opts.InitialData, now)
		c.logger.Debug().Str("key", id).Msg("query seeded with initial data")
	}

	if c.freshLocked(e, staleTime) {
		v, err := decodeLocked[T](e)
		c.mu.Unlock()
		return v, err
	}
	c.mu.Unlock()

	ch := c.group.DoChan(id, func() (any, error) {
		return run(ctx, c, id, opts)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, ok := res.Val.(T)
		if !ok {
			return zero, ErrTypeMismatch
		}
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// run executes one fetch and stores its outcome unless a newer fetch or a
// removal superseded it.
func run[T any](ctx context.Context, c *Client, id string, opts Options[T]) (any, error) {
	c.mu.Lock()
	e := c.entryLocked(opts.Key)
	e.seq++
	seq := e.seq
	gen := e.generation
	e.fetching++
	c.mu.Unlock()

	started := time.Now()
	v, err := opts.Fn(context.WithoutCancel(ctx))

	c.mu.Lock()
	defer c.mu.Unlock()

	e.fetching--
	if c.entries[id] != e {
		// removed or cleared meanwhile
		return v, err
	}

	log := c.logger.Debug().Str("key", id).Dur("duration", time.Since(started))
	if err != nil {
		e.err = err
		e.errorAt = c.clock.Now()
		log.Err(err).Msg("query fetch failed")
		return nil, err
	}

	if seq > e.storedSeq {
		e.storedSeq = seq
		c.storeLocked(e, v, c.clock.Now())
		e.invalidated = e.generation != gen
	}
	log.Bool("stale_on_arrival", e.invalidated).Msg("query fetched")

	return v, nil
}
