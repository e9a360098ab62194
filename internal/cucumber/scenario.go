// Acquires an exclusive lock against the test suite so that it is the only scenario executing until the scenario
// finishes executing.
//
//	Given LOCK
//
// Releases the exclusive lock previously acquired.  Not required, any acquired lock is released at the
// end of the scenario.
//
//	Given UNLOCK
//
// Sleeps for the given number of seconds.
//
//	And I sleep for 0.5 second
package cucumber

import (
	"context"
	"sync"
	"time"

	"github.com/cucumber/godog"
)

var testCaseLock sync.RWMutex

func init() {
	StepModules = append(StepModules, func(ctx *godog.ScenarioContext, s *TestScenario) {
		ctx.Step(`^LOCK-*$`, s.lock)
		ctx.Step(`^UNLOCK-*$`, s.unlock)
		ctx.Step(`^I sleep for (\d+(?:\.\d+)?) seconds?$`, s.iSleepForSecond)

		ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
			testCaseLock.RLock()
			return ctx, nil
		})
		ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
			if s.hasTestCaseLock {
				s.hasTestCaseLock = false
				testCaseLock.Unlock()
			} else {
				testCaseLock.RUnlock()
			}
			return ctx, nil
		})
	})
}

func (s *TestScenario) lock() error {
	if !s.hasTestCaseLock {
		// trade the read lock for the write lock
		testCaseLock.RUnlock()
		testCaseLock.Lock()
		s.hasTestCaseLock = true
	}
	return nil
}

func (s *TestScenario) unlock() error {
	if s.hasTestCaseLock {
		testCaseLock.Unlock()
		testCaseLock.RLock()
		s.hasTestCaseLock = false
	}
	return nil
}

func (s *TestScenario) iSleepForSecond(seconds float64) error {
	time.Sleep(time.Duration(seconds * float64(time.Second)))
	return nil
}
