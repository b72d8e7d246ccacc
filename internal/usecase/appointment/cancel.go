package appointment

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// CancelAppointment: o cliente desiste de um pedido ainda pendente.
type CancelAppointment struct {
	repo  domain.Repository
	audit Auditor
	clock clock.Clock
}

func NewCancelAppointment(
	repo domain.Repository,
	audit Auditor,
	clk clock.Clock,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		clock: clk,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	profileID string,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if err := domain.CustomerCancel(ap, profileID, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProfileID: audit.Ptr(profileID),
		Action:    "appointment_cancelled",
		Entity:    "appointment",
		EntityID:  audit.Ptr(ap.ID),
	})

	return ap, nil
}
