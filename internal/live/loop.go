// Package live drives a runner from a wall-clock ticker and exposes the run
// over a websocket control plane. It is the scheduling caller the projection
// engine itself stays ignorant of.
package live

import (
	"context"
	"fmt"
	"sync"
	"time"

	"harvestsim/internal/model"
	"harvestsim/internal/popdyn"
	"harvestsim/internal/sim"
)

// MaxRateHz bounds the tick rate a caller may request.
const MaxRateHz = 60

// Loop beats a Runner at an adjustable rate. Beats that arrive while the
// runner is paused mutate nothing; rate changes take effect on the next beat
// and never reset simulation state.
type Loop struct {
	runner *sim.Runner

	mu       sync.Mutex
	harvest  popdyn.Harvest
	interval time.Duration
	subs     map[string]chan<- model.Point
}

// NewLoop starts with zero harvest under the given mode and the given beat
// rate.
func NewLoop(runner *sim.Runner, mode popdyn.Mode, rateHz float64) (*Loop, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", popdyn.ErrUnknownMode, mode)
	}
	l := &Loop{
		runner:  runner,
		harvest: popdyn.NoHarvest(mode),
		subs:    make(map[string]chan<- model.Point),
	}
	if err := l.SetRate(rateHz); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Loop) Runner() *sim.Runner { return l.runner }

// SetMode switches the harvest policy and zeroes the parameters, so a mode
// change can never reinterpret old values in new units mid-run.
func (l *Loop) SetMode(mode popdyn.Mode) error {
	h, err := popdyn.NewHarvest(mode, popdyn.Params{})
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.harvest = h
	return nil
}

// SetParams replaces the harvest parameters, clamped to the active mode's
// domain.
func (l *Loop) SetParams(p popdyn.Params) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.harvest.Params = l.harvest.Mode.Clamp(p)
}

func (l *Loop) Harvest() popdyn.Harvest {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.harvest
}

// SetRate adjusts the beat frequency without touching simulation state.
func (l *Loop) SetRate(rateHz float64) error {
	if rateHz <= 0 || rateHz > MaxRateHz {
		return fmt.Errorf("rate must be in (0, %d] Hz, got %f", MaxRateHz, rateHz)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.interval = time.Duration(float64(time.Second) / rateHz)
	return nil
}

func (l *Loop) RateHz() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return float64(time.Second) / float64(l.interval)
}

func (l *Loop) Interval() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.interval
}

// Attach registers a subscriber for per-step points. Slow subscribers miss
// points rather than stalling the beat.
func (l *Loop) Attach(id string, out chan<- model.Point) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs[id] = out
}

func (l *Loop) Detach(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.subs, id)
}

// Tick performs one scheduler beat: a step if the runner is running, a no-op
// otherwise. It reports the recorded point and whether a step happened.
func (l *Loop) Tick() (model.Point, bool) {
	if !l.runner.Running() {
		return model.Point{}, false
	}
	pt := l.runner.Step(l.Harvest())
	l.broadcast(pt)
	return pt, true
}

func (l *Loop) broadcast(pt model.Point) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, out := range l.subs {
		select {
		case out <- pt:
		default:
		}
	}
}

// Run beats until the context is cancelled.
func (l *Loop) Run(ctx context.Context) {
	interval := l.Interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Tick()
			if next := l.Interval(); next != interval {
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}
