package cpu

import "sync"

// TickRate is the canonical rate, in Hz, at which the host ticks the timers.
const TickRate = 60

// Timers holds the delay and sound timers.
// Both are decremented once per Tick until they reach zero. The CPU reads
// and writes them through FX07, FX15 and FX18 while the host ticks them,
// possibly from another goroutine.
type Timers struct {
	mu sync.Mutex
	dt byte
	st byte
}

// Tick decrements both timers, stopping at zero. It reports whether the
// tone should sound for this tick.
func (t *Timers) Tick() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dt > 0 {
		t.dt--
	}
	tone := t.st > 0
	if t.st > 0 {
		t.st--
	}
	return tone
}

// Delay returns the delay timer.
func (t *Timers) Delay() byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dt
}

// Sound returns the sound timer.
func (t *Timers) Sound() byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.st
}

// SetDelay loads the delay timer with v.
func (t *Timers) SetDelay(v byte) {
	t.mu.Lock()
	t.dt = v
	t.mu.Unlock()
}

// SetSound loads the sound timer with v. The tone sounds while it is non-zero.
func (t *Timers) SetSound(v byte) {
	t.mu.Lock()
	t.st = v
	t.mu.Unlock()
}

// Reset zeroes both timers.
func (t *Timers) Reset() {
	t.mu.Lock()
	t.dt, t.st = 0, 0
	t.mu.Unlock()
}
