package clocks

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the time source used for block rotation decisions.
type Clock = clockwork.Clock

// FakeClock is a manually advanced Clock for tests.
type FakeClock = clockwork.FakeClock

// NewRealClock returns a Clock backed by the system time.
var NewRealClock = func() Clock {
	return clockwork.NewRealClock()
}

// NewFakeClockAt returns a FakeClock frozen at t.
func NewFakeClockAt(t time.Time) FakeClock {
	return clockwork.NewFakeClockAt(t)
}
