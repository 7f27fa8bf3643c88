package storage

import (
	"context"
	"testing"

	"harvestsim/internal/model"
)

func sampleScenario(id, name string) model.Scenario {
	return model.Scenario{
		VersionedRecord: NewVersionedRecord(),
		ID:              id,
		Name:            name,
		Biology: model.Biology{
			Initial:   model.StageVector{Juveniles: 1000, SubAdults: 500, Adults: 200},
			Fecundity: model.Fecundity{SubAdult: 0.8, Adult: 2.5},
			Survival:  model.Survival{JuvenileToSubAdult: 0.5, SubAdultToAdult: 0.7, AdultRemain: 0.8},
		},
		Mode:    "selective",
		Harvest: [3]float64{0.1, 0.2, 0.3},
		Horizon: 50,
	}
}

func TestMemoryStoreScenarioRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	input := sampleScenario("s1", "baseline")
	if err := store.SaveScenario(ctx, input); err != nil {
		t.Fatalf("save scenario: %v", err)
	}

	output, ok, err := store.GetScenario(ctx, "s1")
	if err != nil {
		t.Fatalf("get scenario: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted scenario")
	}
	if output != input {
		t.Fatalf("round trip mismatch: %+v vs %+v", output, input)
	}
}

func TestMemoryStoreGetMissingScenario(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	_, ok, err := store.GetScenario(ctx, "absent")
	if err != nil {
		t.Fatalf("get scenario: %v", err)
	}
	if ok {
		t.Fatal("expected missing scenario")
	}
}

func TestMemoryStoreListScenariosSorted(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	for _, s := range []model.Scenario{
		sampleScenario("s2", "heavy quota"),
		sampleScenario("s1", "baseline"),
		sampleScenario("s3", "baseline"),
	} {
		if err := store.SaveScenario(ctx, s); err != nil {
			t.Fatalf("save scenario %s: %v", s.ID, err)
		}
	}

	listed, err := store.ListScenarios(ctx)
	if err != nil {
		t.Fatalf("list scenarios: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(listed))
	}
	// Sorted by name, then ID.
	if listed[0].ID != "s1" || listed[1].ID != "s3" || listed[2].ID != "s2" {
		t.Fatalf("unexpected order: %s %s %s", listed[0].ID, listed[1].ID, listed[2].ID)
	}
}

func TestMemoryStoreDeleteScenario(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	if err := store.SaveScenario(ctx, sampleScenario("s1", "baseline")); err != nil {
		t.Fatalf("save scenario: %v", err)
	}
	if err := store.DeleteScenario(ctx, "s1"); err != nil {
		t.Fatalf("delete scenario: %v", err)
	}
	if _, ok, _ := store.GetScenario(ctx, "s1"); ok {
		t.Fatal("scenario should be gone")
	}
}
