// Package workers runs periodic background jobs of both front ends on a
// robfig/cron scheduler: collection of unused query cache entries and
// expiry of idle web sessions.
package workers

// Worker is a periodic job. Its Run method satisfies cron.Job, so a worker
// can be scheduled directly.
//
// Run should return quickly; a run still in progress when the next tick
// arrives causes that tick to be skipped.
type Worker interface {
	Run()
}

// Collector drops unused cache entries and reports how many it dropped.
// *query.Client and *session.Manager implement it.
type Collector interface {
	GC() int
}

// Expirer ends idle sessions and reports how many it ended.
type Expirer interface {
	Expire() int
}
