package trainstore

import (
	"fmt"
	"sync"

	"github.com/tripathik9559/railops/core/model"
	"github.com/tripathik9559/railops/core/schedule"
)

// Store owns the mutable train list, platform set and last solve result
// shared by the API handlers. All access goes through the lock; solves always
// work on snapshots, so concurrent optimize requests never observe a
// half-applied mutation.
type Store struct {
	mu         sync.RWMutex
	trains     []model.Train
	platforms  []int
	lastResult *model.ScheduleResult
}

// New creates a store seeded with the given trains and platforms. Empty
// inputs fall back to the default demo station.
func New(trains []model.Train, platforms []int) *Store {
	if len(trains) == 0 {
		trains = model.DefaultTrains()
	}
	if len(platforms) == 0 {
		platforms = model.DefaultPlatforms()
	}
	s := &Store{}
	s.trains = append(s.trains, trains...)
	s.platforms = append(s.platforms, platforms...)
	return s
}

// Snapshot returns copies of the current trains and platforms for a solve.
func (s *Store) Snapshot() ([]model.Train, []int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	trains := make([]model.Train, len(s.trains))
	copy(trains, s.trains)
	platforms := make([]int, len(s.platforms))
	copy(platforms, s.platforms)
	return trains, platforms
}

// Trains returns a copy of the current train list.
func (s *Store) Trains() []model.Train {
	trains, _ := s.Snapshot()
	return trains
}

// Get returns the train with the given id.
func (s *Store) Get(id string) (model.Train, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.trains {
		if t.ID == id {
			return t, true
		}
	}
	return model.Train{}, false
}

// Add appends a validated train with a fresh id.
func (s *Store) Add(t model.Train) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.trains {
		if existing.ID == t.ID {
			return fmt.Errorf("train %s already exists", t.ID)
		}
	}
	s.trains = append(s.trains, t)
	return nil
}

// Remove deletes the train with the given id.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.trains {
		if t.ID == id {
			s.trains = append(s.trains[:i], s.trains[i+1:]...)
			return true
		}
	}
	return false
}

// Replace swaps the whole station definition, falling back to the defaults
// for empty inputs.
func (s *Store) Replace(trains []model.Train, platforms []int) {
	if len(trains) == 0 {
		trains = model.DefaultTrains()
	}
	if len(platforms) == 0 {
		platforms = model.DefaultPlatforms()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trains = append([]model.Train(nil), trains...)
	s.platforms = append([]int(nil), platforms...)
}

// ApplyScenario replaces the stored trains and platforms with the perturbed
// copies, making the scenario the new baseline for subsequent solves.
func (s *Store) ApplyScenario(sc schedule.Scenario) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trains, s.platforms = schedule.ApplyScenario(sc, s.trains, s.platforms)
}

// SetLastResult stores the most recent solve outcome.
func (s *Store) SetLastResult(res *model.ScheduleResult) {
	s.mu.Lock()
	s.lastResult = res
	s.mu.Unlock()
}

// LastResult returns the most recent solve outcome, if any.
func (s *Store) LastResult() (*model.ScheduleResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastResult == nil {
		return nil, false
	}
	res := *s.lastResult
	return &res, true
}
