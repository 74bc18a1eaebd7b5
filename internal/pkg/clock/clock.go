package clock

import "time"

// Clock abstracts the current time so that persisted timestamps and
// retention cutoffs can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC.
type System struct{}

// NewSystem returns the production clock.
func NewSystem() Clock {
	return System{}
}

// Now returns the current UTC time.
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a test clock that only moves when told to.
type Fixed struct {
	current time.Time
}

// NewFixed creates a Fixed clock starting at t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{current: t}
}

// Now returns the pinned time.
func (f *Fixed) Now() time.Time {
	return f.current
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.current = t
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.current = f.current.Add(d)
}
