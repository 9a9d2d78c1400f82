package query

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/note-hub/internal/logger"
)

const (
	// DefaultStaleTime applies when neither the query nor the client sets one.
	DefaultStaleTime = time.Minute
	// DefaultGCTime is how long an unobserved, unread entry is kept.
	DefaultGCTime = 5 * time.Minute
)

// entry is one cached query. Guarded by Client.mu.
type entry struct {
	key Key

	data    any
	raw     json.RawMessage
	hasData bool

	updatedAt  time.Time
	lastAccess time.Time

	err     error
	errorAt time.Time

	invalidated bool

	// seq numbers fetch starts; storedSeq is the seq of the data held.
	// An older fetch never overwrites the result of a newer one.
	seq       uint64
	storedSeq uint64
	// generation advances on every invalidation.
	generation uint64

	fetching  int
	observers int
}

// Client is the query cache. Use [NewClient].
type Client struct {
	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group

	clock        Clock
	defaultStale time.Duration
	gcTime       time.Duration
	logger       *logger.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clock Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// WithDefaultStaleTime sets the stale time of queries that do not set one.
func WithDefaultStaleTime(d time.Duration) Option {
	return func(c *Client) { c.defaultStale = d }
}

// WithGCTime sets how long unread entries survive [Client.GC].
func WithGCTime(d time.Duration) Option {
	return func(c *Client) { c.gcTime = d }
}

// WithLogger attaches a logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient returns an empty cache.
func NewClient(opts ...Option) *Client {
	c := &Client{
		entries:      make(map[string]*entry),
		clock:        systemClock{},
		defaultStale: DefaultStaleTime,
		gcTime:       DefaultGCTime,
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State describes an entry without exposing its data.
type State struct {
	HasData     bool
	UpdatedAt   time.Time
	Invalidated bool
	IsFetching  bool
	IsStale     bool
	Err         error
	ErrorAt     time.Time
}

// State returns the state of key. ok is false when the key is unknown.
// Staleness is judged against the client default stale time.
func (c *Client) State(key Key) (st State, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entries[key.String()]
	if e == nil {
		return State{}, false
	}
	return State{
		HasData:     e.hasData,
		UpdatedAt:   e.updatedAt,
		Invalidated: e.invalidated,
		IsFetching:  e.fetching > 0,
		IsStale:     !c.freshLocked(e, c.defaultStale),
		Err:         e.err,
		ErrorAt:     e.errorAt,
	}, true
}

// InvalidateQueries marks every entry whose key starts with prefix as stale
// and detaches in-flight fetches of those keys, so the next read starts a
// new fetch. A detached fetch still stores its result, flagged stale.
// It returns the number of entries affected.
func (c *Client) InvalidateQueries(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for id, e := range c.entries {
		if !e.key.HasPrefix(prefix) {
			continue
		}
		e.invalidated = true
		e.generation++
		c.group.Forget(id)
		n++
	}

	c.logger.Debug().Str("prefix", prefix.String()).Int("count", n).Msg("queries invalidated")
	return n
}

// SetQueryData stores data under key as a fresh successful result.
// It supersedes any fetch of key that is still in flight.
func (c *Client) SetQueryData(key Key, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entryLocked(key)
	e.seq++
	e.storedSeq = e.seq
	c.storeLocked(e, data, c.clock.Now())
}

// GetQueryData returns the data cached under key regardless of staleness.
func GetQueryData[T any](c *Client, key Key) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e := c.entries[key.String()]
	if e == nil || !e.hasData {
		return zero, false
	}
	e.lastAccess = c.clock.Now()

	v, err := decodeLocked[T](e)
	if err != nil {
		return zero, false
	}
	return v, true
}

// Remove drops key from the cache.
func (c *Client) Remove(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := key.String()
	delete(c.entries, id)
	c.group.Forget(id)
}

// Clear drops every entry.
func (c *Client) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id := range c.entries {
		c.group.Forget(id)
	}
	c.entries = make(map[string]*entry)
}

// Len returns the number of entries.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// GC drops entries that are neither observed nor being fetched and were not
// read for longer than the GC time. It returns the number removed.
func (c *Client) GC() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	n := 0
	for id, e := range c.entries {
		if e.fetching > 0 || e.observers > 0 {
			continue
		}
		if now.Sub(e.lastAccess) > c.gcTime {
			delete(c.entries, id)
			n++
		}
	}

	if n > 0 {
		c.logger.Debug().Int("removed", n).Int("left", len(c.entries)).Msg("query cache collected")
	}
	return n
}

func (c *Client) entryLocked(key Key) *entry {
	id := key.String()
	e := c.entries[id]
	if e == nil {
		e = &entry{key: key, lastAccess: c.clock.Now()}
		c.entries[id] = e
	}
	return e
}

func (c *Client) storeLocked(e *entry, data any, at time.Time) {
	e.data = data
	e.raw = nil
	e.hasData = true
	e.updatedAt = at
	e.lastAccess = at
	e.err = nil
	e.errorAt = time.Time{}
	e.invalidated = false
}

func (c *Client) freshLocked(e *entry, staleTime time.Duration) bool {
	if !e.hasData || e.invalidated {
		return false
	}
	return c.clock.Now().Sub(e.updatedAt) < staleTime
}

func (c *Client) subscribe(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entryLocked(key).observers++
}

func (c *Client) unsubscribe(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.entries[key.String()]; e != nil && e.observers > 0 {
		e.observers--
		e.lastAccess = c.clock.Now()
	}
}

// decodeLocked returns the entry data as T, decoding hydrated JSON on first
// use.
func decodeLocked[T any](e *entry) (T, error) {
	var zero T
	if e.raw != nil {
		var v T
		if err := json.Unmarshal(e.raw, &v); err != nil {
			return zero, fmt.Errorf("%w: %w", ErrTypeMismatch, err)
		}
		e.data = v
		e.raw = nil
		return v, nil
	}

	v, ok := e.data.(T)
	if !ok {
		return zero, fmt.Errorf("%w: have %T", ErrTypeMismatch, e.data)
	}
	return v, nil
}
