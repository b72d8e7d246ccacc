package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ListFilter struct {
	ProfileID string // vazio = todos (admin)
	Date      string
	Status    string
}

type Repository interface {
	// -------- Catalog --------
	GetBarber(ctx context.Context, id string) (*models.Barber, error)
	GetService(ctx context.Context, id string) (*models.Service, error)

	// -------- Profiles --------
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	ListAdminPushTokens(ctx context.Context) ([]string, error)

	// -------- Appointment (create) --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	// -------- Appointment (state change) --------
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	CountConfirmedAt(
		ctx context.Context,
		barberID string,
		date string,
		clockTime string,
		excludeID string,
	) (int64, error)

	// -------- Availability --------
	ListConfirmedForDay(
		ctx context.Context,
		barberID string,
		date string,
	) ([]models.Appointment, error)

	// -------- Listing --------
	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, error)
}
