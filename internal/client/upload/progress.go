package upload

import (
	"math/rand"
	"sync"
	"time"
)

// ProgressEstimator feeds displayed upload progress to the UI. The shipped
// implementation is a timer-driven simulator because the transport exposes
// no native progress events; an implementation backed by real transfer
// progress can be substituted without touching the orchestrator.
type ProgressEstimator interface {
	// Start begins reporting percentages through report. Calling Start on a
	// running estimator is a no-op.
	Start(report func(percent int))

	// Stop halts reporting. Safe to call multiple times and required on
	// every exit path so no leaked timer mutates state afterwards.
	Stop()
}

// simulatedCeiling is where the simulator parks until the real request
// finishes; the orchestrator jumps to 100 on completion.
const simulatedCeiling = 90

// TickerEstimator advances a displayed percentage by a random step toward
// simulatedCeiling on every tick. Purely cosmetic, uncorrelated with bytes.
type TickerEstimator struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

func NewTickerEstimator(interval time.Duration) *TickerEstimator {
	return &TickerEstimator{interval: interval}
}

func (e *TickerEstimator) Start(report func(percent int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stop != nil {
		return
	}
	stop := make(chan struct{})
	e.stop = stop

	go func() {
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		progress := 0.0
		for {
			select {
			case <-ticker.C:
				if progress < simulatedCeiling {
					progress += rand.Float64() * 10
					if progress > simulatedCeiling {
						progress = simulatedCeiling
					}
				}
				report(int(progress))
			case <-stop:
				return
			}
		}
	}()
}

func (e *TickerEstimator) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}
}
