// Package store provides ConfigStore implementations.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/atlas/quota-engine/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	holidays map[string]generic.Holiday
	teams    map[string]generic.Team
}

var _ generic.ConfigStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		holidays: make(map[string]generic.Holiday),
		teams:    make(map[string]generic.Team),
	}
}

// SaveHoliday inserts or replaces by ID.
func (m *Memory) SaveHoliday(_ context.Context, h generic.Holiday) error {
	if h.ID == "" {
		return &generic.InvalidArgumentError{Field: "id", Value: h.ID, Reason: "required"}
	}
	if h.Date.IsZero() {
		return &generic.InvalidArgumentError{Field: "date", Value: h.Date, Reason: "required"}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holidays[h.ID] = h
	return nil
}

func (m *Memory) DeleteHoliday(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.holidays[id]; !ok {
		return fmt.Errorf("%w: %s", generic.ErrHolidayNotFound, id)
	}
	delete(m.holidays, id)
	return nil
}

func (m *Memory) ListHolidays(_ context.Context) ([]generic.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]generic.Holiday, 0, len(m.holidays))
	for _, h := range m.holidays {
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].ID < result[j].ID
		}
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (m *Memory) HolidaysFor(ctx context.Context, period generic.Period) (generic.HolidaySet, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	all, err := m.ListHolidays(ctx)
	if err != nil {
		return nil, err
	}
	return generic.HolidaySetFor(all, period), nil
}

func (m *Memory) SaveTeam(_ context.Context, t generic.Team) error {
	if t.ID == "" {
		return &generic.InvalidArgumentError{Field: "id", Value: t.ID, Reason: "required"}
	}
	if t.DefaultTarget < 0 {
		return generic.NegativeCountError("default_target", t.DefaultTarget)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, other := range m.teams {
		if id != t.ID && other.Name == t.Name {
			return generic.DuplicateTeamNameError(t.Name)
		}
	}
	m.teams[t.ID] = t
	return nil
}

func (m *Memory) GetTeam(_ context.Context, id string) (generic.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.teams[id]
	if !ok {
		return generic.Team{}, fmt.Errorf("%w: %s", generic.ErrTeamNotFound, id)
	}
	return t, nil
}

func (m *Memory) ListTeams(_ context.Context) ([]generic.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]generic.Team, 0, len(m.teams))
	for _, t := range m.teams {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
