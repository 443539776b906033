package dma

// DefaultTimeoutThreshold is the number of pending ticks a handshake may
// stall before the watchdog aborts the transfer.
const DefaultTimeoutThreshold = 100000

// A Watchdog detects a stalled handshake. It counts only ticks where the
// associated request is asserted but not yet acknowledged, and is reset on
// every completed handshake and on every phase change.
type Watchdog struct {
	count     uint64
	threshold uint64
}

// NewWatchdog creates a watchdog that expires after the request has been
// pending for strictly more than threshold ticks.
func NewWatchdog(threshold uint64) Watchdog {
	return Watchdog{threshold: threshold}
}

// Count records one pending tick and reports whether the watchdog expired.
func (w *Watchdog) Count() bool {
	w.count++
	return w.count > w.threshold
}

// Pending returns the number of ticks the current wait has lasted.
func (w *Watchdog) Pending() uint64 {
	return w.count
}

// Reset clears the counter.
func (w *Watchdog) Reset() {
	w.count = 0
}
