package storage

import (
	"context"
	"sort"
	"sync"

	"harvestsim/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	scenarios   map[string]model.Scenario
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.scenarios = make(map[string]model.Scenario)
	return nil
}

func (s *MemoryStore) SaveScenario(_ context.Context, scenario model.Scenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scenarios[scenario.ID] = scenario
	return nil
}

func (s *MemoryStore) GetScenario(_ context.Context, id string) (model.Scenario, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scenario, ok := s.scenarios[id]
	return scenario, ok, nil
}

func (s *MemoryStore) ListScenarios(_ context.Context) ([]model.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listed := make([]model.Scenario, 0, len(s.scenarios))
	for _, scenario := range s.scenarios {
		listed = append(listed, scenario)
	}
	sort.Slice(listed, func(i, j int) bool {
		if listed[i].Name != listed[j].Name {
			return listed[i].Name < listed[j].Name
		}
		return listed[i].ID < listed[j].ID
	})
	return listed, nil
}

func (s *MemoryStore) DeleteScenario(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.scenarios, id)
	return nil
}
