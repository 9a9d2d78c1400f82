package query

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// DehydratedState is a serialisable snapshot of successful cache entries.
type DehydratedState struct {
	Queries []DehydratedQuery `json:"queries"`
}

// DehydratedQuery is one entry of a [DehydratedState].
type DehydratedQuery struct {
	Key       Key             `json:"queryKey"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"dataUpdatedAt"`
}

// Dehydrate snapshots entries holding valid data, ordered by key. With keys
// given, only entries matching one of them as a prefix are included.
func (c *Client) Dehydrate(keys ...Key) (DehydratedState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := DehydratedState{Queries: make([]DehydratedQuery, 0, len(c.entries))}
	for id, e := range c.entries {
		if !e.hasData || e.invalidated || !matchesAny(e.key, keys) {
			continue
		}

		data := e.raw
		if data == nil {
			b, err := json.Marshal(e.data)
			if err != nil {
				return DehydratedState{}, fmt.Errorf("dehydrate %s: %w", id, err)
			}
			data = b
		}

		state.Queries = append(state.Queries, DehydratedQuery{
			Key:       e.key,
			Data:      data,
			UpdatedAt: e.updatedAt,
		})
	}

	sort.Slice(state.Queries, func(i, j int) bool {
		return state.Queries[i].Key.String() < state.Queries[j].Key.String()
	})
	return state, nil
}

func matchesAny(k Key, prefixes []Key) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if k.HasPrefix(p) {
			return true
		}
	}
	return false
}

// Hydrate merges a snapshot into the cache. An incoming entry replaces an
// existing one only when it is newer. Data stays raw JSON until it is first
// read with a concrete type.
func (c *Client) Hydrate(state DehydratedState) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	n := 0
	for _, q := range state.Queries {
		e := c.entryLocked(q.Key)
		if e.hasData && !e.updatedAt.Before(q.UpdatedAt) {
			continue
		}

		e.seq++
		e.storedSeq = e.seq
		e.data = nil
		e.raw = append(json.RawMessage(nil), q.Data...)
		e.hasData = true
		e.updatedAt = q.UpdatedAt
		e.lastAccess = now
		e.err = nil
		e.invalidated = false
		n++
	}
	return n
}
