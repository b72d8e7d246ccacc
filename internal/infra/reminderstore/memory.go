package reminderstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/reminder"
)

// Memory é usado quando não há Redis configurado; não sobrevive a
// reinícios do processo.
type Memory struct {
	mu      sync.Mutex
	intents map[string]time.Time
}

func NewMemory() *Memory {
	return &Memory{intents: map[string]time.Time{}}
}

func (m *Memory) Put(_ context.Context, in reminder.Intent) error {
	m.mu.Lock()
	m.intents[in.AppointmentID] = in.FireAt
	m.mu.Unlock()
	return nil
}

func (m *Memory) Remove(_ context.Context, appointmentID string) error {
	m.mu.Lock()
	delete(m.intents, appointmentID)
	m.mu.Unlock()
	return nil
}

func (m *Memory) ClaimDue(_ context.Context, now time.Time, limit int) ([]reminder.Intent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var due []reminder.Intent
	for id, at := range m.intents {
		if !at.After(now) {
			due = append(due, reminder.Intent{AppointmentID: id, FireAt: at})
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].FireAt.Before(due[j].FireAt) })

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	for _, in := range due {
		delete(m.intents, in.AppointmentID)
	}
	return due, nil
}

// Pending devolve o horário armado para o agendamento, se houver.
func (m *Memory) Pending(appointmentID string) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.intents[appointmentID]
	return at, ok
}

var _ reminder.Store = (*Memory)(nil)
