package scheduler

import "time"

// Clock abstracts time so due-selection and executor timestamps can be
// pinned in tests.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock returns a fixed instant and can be moved manually.
type FixedClock struct {
	t time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t}
}

func (f *FixedClock) Now() time.Time {
	return f.t
}

func (f *FixedClock) SetTime(t time.Time) {
	f.t = t
}

func (f *FixedClock) Advance(d time.Duration) {
	f.t = f.t.Add(d)
}
