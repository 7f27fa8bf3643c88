package popdyn

import (
	"testing"

	"harvestsim/internal/model"
)

func TestProjectSeriesShape(t *testing.T) {
	m := New(referenceBiology())

	series := m.Project(NoHarvest(ModeSelective), 50)
	if len(series) != 51 {
		t.Fatalf("expected 51 points, got %d", len(series))
	}
	if series[0].Year != 0 || series[0].Stages != m.Bio.Initial {
		t.Fatalf("series must start at the initial vector: %+v", series[0])
	}
	for i, pt := range series {
		if pt.Year != i {
			t.Fatalf("point %d has year %d", i, pt.Year)
		}
	}
}

func TestProjectTotalIsDerivedFromStages(t *testing.T) {
	m := New(referenceBiology())

	series := m.Project(NoHarvest(ModeSelective), 10)
	if got, want := series[0].Stages.Total(), m.Bio.Initial.Total(); got != want {
		t.Fatalf("initial total: got %f, want %f", got, want)
	}
	for _, pt := range series {
		sum := pt.Stages.Juveniles + pt.Stages.SubAdults + pt.Stages.Adults
		if pt.Stages.Total() != sum {
			t.Fatalf("year %d: total %f diverged from stage sum %f", pt.Year, pt.Stages.Total(), sum)
		}
	}
}

func TestProjectMatchesRepeatedAdvance(t *testing.T) {
	m := New(referenceBiology())
	h, err := NewHarvest(ModeSelective, Params{0.1, 0.2, 0.3})
	if err != nil {
		t.Fatalf("new harvest: %v", err)
	}

	series := m.Project(h, 25)
	current := m.Bio.Initial
	for year := 1; year <= 25; year++ {
		current = m.Advance(current, h)
		if series[year].Stages != current {
			t.Fatalf("year %d: projected %+v, advanced %+v", year, series[year].Stages, current)
		}
	}
}

func TestProjectIsReentrant(t *testing.T) {
	m := New(referenceBiology())
	h, err := NewHarvest(ModeConstantQuota, Params{100, 50, 10})
	if err != nil {
		t.Fatalf("new harvest: %v", err)
	}

	first := m.Project(h, 20)
	second := m.Project(h, 20)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}

	// Mutating one series must not leak into another call's result.
	first[5].Stages.Juveniles = -1
	third := m.Project(h, 20)
	if third[5] != second[5] {
		t.Fatalf("series share state: %+v vs %+v", third[5], second[5])
	}
}

func TestProjectDegenerateHorizons(t *testing.T) {
	m := New(referenceBiology())

	zero := m.Project(NoHarvest(ModeProportional), 0)
	if len(zero) != 1 || zero[0].Stages != m.Bio.Initial {
		t.Fatalf("horizon 0: %+v", zero)
	}

	negative := m.Project(NoHarvest(ModeProportional), -3)
	if len(negative) != 1 {
		t.Fatalf("negative horizon should behave like 0, got %d points", len(negative))
	}
}

func TestProjectFromCustomStart(t *testing.T) {
	m := New(referenceBiology())
	start := model.StageVector{Juveniles: 10, SubAdults: 20, Adults: 30}

	series := m.ProjectFrom(start, NoHarvest(ModeSelective), 5)
	if series[0].Stages != start {
		t.Fatalf("expected custom start, got %+v", series[0].Stages)
	}
	if len(series) != 6 {
		t.Fatalf("expected 6 points, got %d", len(series))
	}
}
