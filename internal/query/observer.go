package query

import (
	"context"
	"sync"
)

// Result is what a view renders for its current key.
type Result[T any] struct {
	Data    T
	HasData bool

	// IsLoading is true when there is nothing to show yet: no data for the
	// key, no placeholder and no error.
	IsLoading bool
	// IsFetching is true while a fetch of the key is in flight.
	IsFetching bool
	IsError    bool
	Err        error

	// IsPlaceholderData is true when Data belongs to the previous key and
	// is shown only while the current key resolves.
	IsPlaceholderData bool
}

// Observer binds a view to one key at a time.
type Observer[T any] struct {
	client       *Client
	keepPrevious bool

	mu      sync.Mutex
	key     Key
	hasKey  bool
	prev    T
	hasPrev bool
}

// NewObserver returns an observer with no key. With keepPrevious the data of
// the last resolved key is offered as placeholder while a new key loads.
func NewObserver[T any](c *Client, keepPrevious bool) *Observer[T] {
	return &Observer[T]{client: c, keepPrevious: keepPrevious}
}

// SetKey switches the observed key and reports whether it changed.
func (o *Observer[T]) SetKey(key Key) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.hasKey && o.key.Equal(key) {
		return false
	}

	if o.hasKey {
		o.rememberLocked()
		o.client.unsubscribe(o.key)
	}
	o.key = key
	o.hasKey = true
	o.client.subscribe(key)
	return true
}

// Key returns the observed key.
func (o *Observer[T]) Key() Key {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.key
}

// Fetch runs [Fetch] for the observed key. opts.Key is ignored.
func (o *Observer[T]) Fetch(ctx context.Context, opts Options[T]) (T, error) {
	opts.Key = o.Key()

	v, err := Fetch(ctx, o.client, opts)
	if err == nil {
		o.mu.Lock()
		if o.key.Equal(opts.Key) {
			o.prev, o.hasPrev = v, true
		}
		o.mu.Unlock()
	}
	return v, err
}

// Result derives the render state of the observed key from the cache.
func (o *Observer[T]) Result() Result[T] {
	o.mu.Lock()
	defer o.mu.Unlock()

	var res Result[T]
	if !o.hasKey {
		res.IsLoading = true
		return res
	}

	st, _ := o.client.State(o.key)
	res.IsFetching = st.IsFetching
	res.Err = st.Err
	res.IsError = st.Err != nil

	if data, ok := GetQueryData[T](o.client, o.key); ok {
		res.Data, res.HasData = data, true
		o.prev, o.hasPrev = data, true
		return res
	}

	if res.IsError {
		return res
	}

	if o.keepPrevious && o.hasPrev {
		res.Data, res.HasData = o.prev, true
		res.IsPlaceholderData = true
		return res
	}

	res.IsLoading = true
	return res
}

// Close releases the observed key so it can be collected.
func (o *Observer[T]) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.hasKey {
		o.client.unsubscribe(o.key)
		o.hasKey = false
	}
}

// rememberLocked keeps the data of the outgoing key as placeholder.
func (o *Observer[T]) rememberLocked() {
	if data, ok := GetQueryData[T](o.client, o.key); ok {
		o.prev, o.hasPrev = data, true
	}
}
