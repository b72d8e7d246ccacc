package appointment

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/push"
)

type UpdateStatusInput struct {
	ActorID       string
	AppointmentID string
	Status        string
}

// UpdateAppointmentStatus é a ação do administrador sobre um agendamento.
type UpdateAppointmentStatus struct {
	repo      domain.Repository
	reminders ReminderScheduler
	audit     Auditor
	notifier  Notifier
	clock     clock.Clock
	log       *slog.Logger
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	reminders ReminderScheduler,
	audit Auditor,
	notifier Notifier,
	clk clock.Clock,
	log *slog.Logger,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:      repo,
		reminders: reminders,
		audit:     audit,
		notifier:  notifier,
		clock:     clk,
		log:       log,
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	next, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}
	previous := domain.Status(ap.Status)

	// --------------------------------------------------
	// Um único confirmado por barbeiro/data/horário
	// --------------------------------------------------
	if next == domain.StatusConfirmed {
		n, err := uc.repo.CountConfirmedAt(ctx, ap.BarberID, ap.AppointmentDate, ap.AppointmentTime, ap.ID)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, httperr.ErrBusiness("slot_already_confirmed")
		}
	}

	if err := domain.Transition(ap, next, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, httperr.ErrBusiness("slot_already_confirmed")
		}
		return nil, err
	}

	// --------------------------------------------------
	// Lembrete
	// --------------------------------------------------
	switch {
	case next == domain.StatusConfirmed:
		if _, err := uc.reminders.Schedule(ctx, ap); err != nil {
			uc.log.Warn("reminder schedule failed", slog.String("appointment_id", ap.ID), slog.Any("err", err))
		}
	case previous == domain.StatusConfirmed:
		if err := uc.reminders.Cancel(ctx, ap.ID); err != nil {
			uc.log.Warn("reminder cancel failed", slog.String("appointment_id", ap.ID), slog.Any("err", err))
		}
	}

	// --------------------------------------------------
	// Aviso ao cliente + auditoria
	// --------------------------------------------------
	uc.notifier.Dispatch(push.Notification(
		ap.Profile.PushToken,
		push.TitleStatusChanged,
		push.StatusChangedBody(ap.Barber.Name, ap.Service.Name, next.Label()),
		map[string]any{"appointment_id": ap.ID, "status": string(next)},
	))

	uc.audit.Dispatch(audit.Event{
		ProfileID: audit.Ptr(in.ActorID),
		Action:    "appointment_status_changed",
		Entity:    "appointment",
		EntityID:  audit.Ptr(ap.ID),
		Metadata: map[string]any{
			"from": string(previous),
			"to":   string(next),
		},
	})

	return ap, nil
}
