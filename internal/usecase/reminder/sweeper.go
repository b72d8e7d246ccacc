package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/reminder"
	"github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/push"
)

type AppointmentReader interface {
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
}

// ======================================================
// SWEEPER
// ======================================================

type Sweeper struct {
	store    reminder.Store
	repo     AppointmentReader
	sender   push.Sender
	clock    clock.Clock
	interval time.Duration
	batch    int
	timeout  time.Duration
	log      *slog.Logger
}

func NewSweeper(
	store reminder.Store,
	repo AppointmentReader,
	sender push.Sender,
	clk clock.Clock,
	interval time.Duration,
	log *slog.Logger,
) *Sweeper {
	return &Sweeper{
		store:    store,
		repo:     repo,
		sender:   sender,
		clock:    clk,
		interval: interval,
		batch:    100,
		timeout:  10 * time.Second,
		log:      log,
	}
}

// Run varre até o contexto ser cancelado.
func (w *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("reminder sweeper started", slog.Duration("interval", w.interval))
	for {
		select {
		case <-ctx.Done():
			w.log.Info("reminder sweeper stopped")
			return
		case <-ticker.C:
			w.SweepOnce(ctx)
		}
	}
}

// SweepOnce reivindica os lembretes vencidos e devolve quantos foram
// enviados. Um lembrete reivindicado nunca é re-tentado.
func (w *Sweeper) SweepOnce(ctx context.Context) int {
	due, err := w.store.ClaimDue(ctx, w.clock.Now(), w.batch)
	if err != nil {
		w.log.Error("reminder claim failed", slog.Any("err", err))
	}

	sent := 0
	for _, in := range due {
		if w.fire(ctx, in) {
			sent++
		}
	}
	return sent
}

func (w *Sweeper) fire(ctx context.Context, in reminder.Intent) bool {
	log := w.log.With(slog.String("appointment_id", in.AppointmentID))

	ap, err := w.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Info("reminder skipped, appointment not found")
		} else {
			log.Warn("reminder skipped, appointment lookup failed", slog.Any("err", err))
		}
		return false
	}

	if domain.Status(ap.Status) != domain.StatusConfirmed {
		log.Info("reminder skipped, appointment no longer confirmed", slog.String("status", ap.Status))
		return false
	}

	profile, err := w.repo.GetProfile(ctx, ap.ProfileID)
	if err != nil {
		log.Warn("reminder skipped, push token lookup failed", slog.Any("err", err))
		return false
	}
	if profile.PushToken == "" {
		log.Info("reminder skipped, customer has no push token")
		return false
	}

	display, err := slot.ToDisplay(ap.AppointmentTime)
	if err != nil {
		display = ap.AppointmentTime
	}

	sendCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	msg := push.Notification(
		profile.PushToken,
		push.TitleReminder,
		push.ReminderBody(ap.Barber.Name, ap.Service.Name, display),
		map[string]any{"appointment_id": ap.ID},
	)
	if err := w.sender.Send(sendCtx, msg); err != nil {
		log.Warn("reminder push failed", slog.Any("err", err))
		return false
	}

	log.Info("reminder sent")
	return true
}
