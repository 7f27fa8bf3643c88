package sim

import (
	"sync"

	"harvestsim/internal/model"
	"harvestsim/internal/popdyn"
)

// Runner owns the mutable state of a live projection: the current stage
// vector, the recorded series, the year counter, and the run flag. All
// mutation happens through Step, Reset, and ToggleRun.
type Runner struct {
	mu      sync.RWMutex
	model   popdyn.Model
	current model.StageVector
	history []model.Point
	year    int
	running bool
}

// NewRunner starts paused at year 0 with the model's initial vector as the
// only recorded point.
func NewRunner(m popdyn.Model) *Runner {
	r := &Runner{model: m}
	r.rewind()
	return r
}

// Step advances one year unconditionally: honoring a paused run flag is the
// scheduler's responsibility, not this method's. The new point is appended to
// the history and returned.
func (r *Runner) Step(h popdyn.Harvest) model.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = r.model.Advance(r.current, h)
	r.year++
	pt := model.Point{Year: r.year, Stages: r.current}
	r.history = append(r.history, pt)
	return pt
}

// Reset restores year 0 and discards all later history. The run flag is left
// alone; whether a reset implies pause is the caller's decision.
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rewind()
}

func (r *Runner) rewind() {
	r.current = r.model.Bio.Initial
	r.year = 0
	r.history = []model.Point{{Year: 0, Stages: r.current}}
}

// ToggleRun flips the run flag and reports the new state. It never touches
// the series or the year counter.
func (r *Runner) ToggleRun() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.running = !r.running
	return r.running
}

func (r *Runner) Running() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.running
}

func (r *Runner) Current() model.StageVector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

func (r *Runner) Year() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.year
}

// History returns a copy of the recorded series.
func (r *Runner) History() []model.Point {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copied := make([]model.Point, len(r.history))
	copy(copied, r.history)
	return copied
}

// Snapshot is a single consistent read of the runner, taken under one lock.
type Snapshot struct {
	Year    int               `json:"year"`
	Current model.StageVector `json:"current"`
	Running bool              `json:"running"`
	Points  int               `json:"points"`
}

func (r *Runner) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Snapshot{
		Year:    r.year,
		Current: r.current,
		Running: r.running,
		Points:  len(r.history),
	}
}
