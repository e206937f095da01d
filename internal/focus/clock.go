package focus

import "time"

// Clock abstracts time retrieval so log timestamps are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Ticker is a cancellable one-second repeating task for hosts that run their
// own select loop. At most one underlying ticker is active: Resume replaces any
// previous one and Suspend stops it.
type Ticker struct {
	interval time.Duration
	tk       *time.Ticker
}

func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{interval: interval}
}

// Resume starts delivering ticks one interval from now.
func (t *Ticker) Resume() {
	t.Suspend()
	t.tk = time.NewTicker(t.interval)
}

// Suspend stops delivery. A suspended ticker's channel never fires.
func (t *Ticker) Suspend() {
	if t.tk != nil {
		t.tk.Stop()
		t.tk = nil
	}
}

func (t *Ticker) Active() bool { return t.tk != nil }

// C returns the tick channel, or nil while suspended so a select on it blocks.
func (t *Ticker) C() <-chan time.Time {
	if t.tk == nil {
		return nil
	}
	return t.tk.C
}
