// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package query is a keyed cache of asynchronous fetch results.
//
// A [Client] maps a [Key] (an ordered tuple such as ["notes", "", 1, "Work"])
// to the last successful result of its fetch function together with the
// time it was stored. [Fetch] returns cached data while it is fresh and runs
// the fetch function otherwise. Concurrent fetches of one key are collapsed
// into a single call. [Client.InvalidateQueries] marks every entry under a
// key prefix as stale so the next read refetches.
//
// A Client is created per user session (per browser session on the web,
// once per process in the terminal client); it is never a package global.
// All methods are safe for concurrent use.
//
// [Client.Dehydrate] and [Client.Hydrate] move a snapshot of the cache
// between processes (server-side prefetch into an HTML page), and
// [Observer] gives a view the "keep previous data" behaviour used for
// pagination.
package query
