package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Transition(ap *models.Appointment, next Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), next); err != nil {
		return err
	}

	ap.Status = string(next)
	ap.UpdatedAt = &now
	return nil
}

func CustomerCancel(ap *models.Appointment, profileID string, now time.Time) error {
	if ap.ProfileID != profileID {
		return ErrForbidden
	}
	if err := CanCustomerCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.UpdatedAt = &now
	return nil
}
