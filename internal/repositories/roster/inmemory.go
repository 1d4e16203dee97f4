package roster

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-tracker/internal/errors"
)

// InMemory keeps the encoded snapshot in process. Nothing survives a restart.
type InMemory struct {
	mu   sync.RWMutex
	data []byte
}

// NewInMemory creates an empty in-memory repository
func NewInMemory() *InMemory {
	return &InMemory{}
}

// Load implements Repository
func (m *InMemory) Load(_ context.Context, _ LoadInput) (*LoadOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.data == nil {
		return nil, errors.NotFound("no roster stored")
	}
	roster, err := decode(m.data)
	if err != nil {
		return nil, err
	}
	return &LoadOutput{Roster: roster}, nil
}

// Save implements Repository
func (m *InMemory) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	data, err := encode(input.Roster)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return &SaveOutput{}, nil
}

// Clear implements Repository
func (m *InMemory) Clear(_ context.Context, _ ClearInput) (*ClearOutput, error) {
	m.mu.Lock()
	m.data = nil
	m.mu.Unlock()
	return &ClearOutput{}, nil
}

var (
	_ Repository = (*InMemory)(nil)
	_ Repository = (*SQLite)(nil)
)
