package storage

import (
	"context"

	"harvestsim/internal/model"
)

// Store persists named scenario presets: the inputs needed to reproduce a
// projection. Projection output is never persisted.
type Store interface {
	Init(ctx context.Context) error
	SaveScenario(ctx context.Context, scenario model.Scenario) error
	GetScenario(ctx context.Context, id string) (model.Scenario, bool, error)
	ListScenarios(ctx context.Context) ([]model.Scenario, error)
	DeleteScenario(ctx context.Context, id string) error
}
