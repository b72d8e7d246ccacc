package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/reminder"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// SCHEDULER
// ======================================================

type Scheduler struct {
	store reminder.Store
	clock clock.Clock
	lead  time.Duration
	loc   *time.Location
	log   *slog.Logger
}

func NewScheduler(
	store reminder.Store,
	clk clock.Clock,
	lead time.Duration,
	loc *time.Location,
	log *slog.Logger,
) *Scheduler {
	return &Scheduler{store: store, clock: clk, lead: lead, loc: loc, log: log}
}

// Schedule arma o lembrete de um agendamento confirmado. Devolve false
// quando não há o que armar (não confirmado ou horário já passou).
func (s *Scheduler) Schedule(ctx context.Context, ap *models.Appointment) (bool, error) {
	if domain.Status(ap.Status) != domain.StatusConfirmed {
		return false, nil
	}

	fireAt, err := reminder.FireAt(ap.AppointmentDate, ap.AppointmentTime, s.lead, s.loc)
	if err != nil {
		return false, errors.Wrapf(err, "reminder fire time for %s", ap.ID)
	}

	if !fireAt.After(s.clock.Now()) {
		s.log.Debug("reminder skipped, fire time already passed",
			slog.String("appointment_id", ap.ID),
			slog.Time("fire_at", fireAt),
		)
		return false, nil
	}

	if err := s.store.Put(ctx, reminder.Intent{AppointmentID: ap.ID, FireAt: fireAt}); err != nil {
		return false, err
	}
	return true, nil
}

// ScheduleAll é chamado na listagem do cliente; erros são só logados.
func (s *Scheduler) ScheduleAll(ctx context.Context, apps []models.Appointment) int {
	armed := 0
	for i := range apps {
		ok, err := s.Schedule(ctx, &apps[i])
		if err != nil {
			s.log.Warn("reminder schedule failed", slog.String("appointment_id", apps[i].ID), slog.Any("err", err))
			continue
		}
		if ok {
			armed++
		}
	}
	return armed
}

func (s *Scheduler) Cancel(ctx context.Context, appointmentID string) error {
	return s.store.Remove(ctx, appointmentID)
}
