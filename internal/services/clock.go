package services

import "time"

// Timer is a cancelable pending callback. Stop reports whether the call
// prevented the callback from running.
type Timer interface {
	Stop() bool
}

// Clock abstracts wall-clock reads and one-shot timer creation so reminder
// timing can be driven deterministically in tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// SystemClock returns a Clock backed by the time package.
func SystemClock() Clock {
	return systemClock{}
}
