// Package leaktest asserts that components which spawn background
// goroutines, such as the outbox drainer and the event bus fan-out,
// actually stop them when shut down.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const settleDelay = 50 * time.Millisecond

// snapshot waits briefly for scheduling churn to settle, then returns the
// live goroutine count.
func snapshot() int {
	runtime.Gosched()
	time.Sleep(settleDelay)
	return runtime.NumGoroutine()
}

// CheckNoGoroutineLeak runs fn and fails the test if any goroutine started
// inside fn outlives it. fn is expected to start and fully shut down the
// component under test.
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	before := snapshot()
	fn()

	// Give stragglers a chance to exit before declaring a leak.
	runtime.GC()
	after := snapshot()

	if leaked := after - before; leaked > 0 {
		t.Errorf("goroutine leak: %d before, %d after (%d leaked)", before, after, leaked)
	}
}

// WaitUntilGoroutines polls until the live goroutine count drops to target
// or the timeout elapses. Useful when a shutdown path signals completion
// before its workers have fully unwound.
func WaitUntilGoroutines(t *testing.T, target int, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= target {
			return
		}
		runtime.Gosched()
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("still %d goroutines after %v, wanted at most %d",
		runtime.NumGoroutine(), timeout, target)
}
