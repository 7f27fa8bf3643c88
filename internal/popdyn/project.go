package popdyn

import "harvestsim/internal/model"

// ProjectFrom iterates the transition model exactly horizon times from v0,
// recording every intermediate vector. The returned series has horizon+1
// entries with index 0 equal to v0 at year 0. Each call is independent and
// reentrant.
func (m Model) ProjectFrom(v0 model.StageVector, h Harvest, horizon int) []model.Point {
	if horizon < 0 {
		horizon = 0
	}
	series := make([]model.Point, 0, horizon+1)
	series = append(series, model.Point{Year: 0, Stages: v0})
	current := v0
	for year := 1; year <= horizon; year++ {
		current = m.Advance(current, h)
		series = append(series, model.Point{Year: year, Stages: current})
	}
	return series
}

// Project runs ProjectFrom starting at the configured initial vector.
func (m Model) Project(h Harvest, horizon int) []model.Point {
	return m.ProjectFrom(m.Bio.Initial, h, horizon)
}
