package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/push"
)

type Auditor interface {
	Dispatch(ev audit.Event)
}

type Notifier interface {
	Dispatch(msg push.Message)
}

type ReminderScheduler interface {
	Schedule(ctx context.Context, ap *models.Appointment) (bool, error)
	ScheduleAll(ctx context.Context, apps []models.Appointment) int
	Cancel(ctx context.Context, appointmentID string) error
}
