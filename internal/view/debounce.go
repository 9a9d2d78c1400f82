package view

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is the quiet period before a search term applies.
const DefaultSearchDebounce = 500 * time.Millisecond

// Debouncer delays a string value until it stops changing. The caller owns
// the timer: Push returns a generation and, after [Debouncer.Delay], the
// caller hands it back to Fire. Only the newest generation commits, so
// keystrokes typed during the delay cancel the earlier ones.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	gen     uint64
	pending string
	value   string
}

// NewDebouncer returns a debouncer with the given delay; non-positive means
// [DefaultSearchDebounce].
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultSearchDebounce
	}
	return &Debouncer{delay: delay}
}

// Push records v as the pending value and returns its generation.
func (d *Debouncer) Push(v string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	d.pending = v
	return d.gen
}

// Fire commits the pending value if gen is still the newest. It reports
// whether the committed value changed.
func (d *Debouncer) Fire(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.gen || d.value == d.pending {
		return false
	}
	d.value = d.pending
	return true
}

// Set commits v immediately and drops any pending generation.
func (d *Debouncer) Set(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	d.pending = v
	d.value = v
}

// Value returns the committed value.
func (d *Debouncer) Value() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Delay returns the configured quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}
