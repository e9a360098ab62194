package util

import "sync"

// GoWithWaitGroup runs fn in a goroutine.  When wg is not nil it is
// incremented before the goroutine starts and marked done when fn returns.
func GoWithWaitGroup(wg *sync.WaitGroup, fn func()) {
	if wg == nil {
		go fn()
		return
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		fn()
	}()
}
