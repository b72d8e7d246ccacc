package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// mapErr traduz erros do gorm/pgx para os erros do domínio.
func mapErr(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Mark(errors.Wrap(err, op), domain.ErrNotFound)
	case httperr.IsUniqueViolation(err):
		return errors.Mark(errors.Wrap(err, op), domain.ErrSlotTaken)
	default:
		return errors.Wrap(err, op)
	}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarber(ctx context.Context, id string) (*models.Barber, error) {
	var b models.Barber
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, mapErr(err, "get barber")
	}
	return &b, nil
}

func (r *AppointmentGormRepository) GetService(ctx context.Context, id string) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, mapErr(err, "get service")
	}
	return &s, nil
}

// --------------------------------------------------
// Profiles
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, mapErr(err, "get profile")
	}
	return &p, nil
}

func (r *AppointmentGormRepository) ListAdminPushTokens(ctx context.Context) ([]string, error) {
	var tokens []string
	if err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("is_admin = ? AND push_token <> ''", true).
		Pluck("push_token", &tokens).Error; err != nil {
		return nil, mapErr(err, "list admin push tokens")
	}
	return tokens, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return mapErr(r.db.WithContext(ctx).Create(ap).Error, "create appointment")
}

func (r *AppointmentGormRepository) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Barber").
		Preload("Service").
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, mapErr(err, "get appointment")
	}
	return &ap, nil
}

// UpdateAppointment grava só status e updated_at; as associações
// carregadas não são tocadas.
func (r *AppointmentGormRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Updates(map[string]any{
			"status":     ap.Status,
			"updated_at": ap.UpdatedAt,
		})
	if res.Error != nil {
		return mapErr(res.Error, "update appointment")
	}
	if res.RowsAffected == 0 {
		return mapErr(gorm.ErrRecordNotFound, "update appointment")
	}
	return nil
}

func (r *AppointmentGormRepository) CountConfirmedAt(
	ctx context.Context,
	barberID string,
	date string,
	clockTime string,
	excludeID string,
) (int64, error) {

	var count int64
	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND appointment_date = ? AND appointment_time = ? AND status = ?",
			barberID, date, clockTime, string(domain.StatusConfirmed),
		)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, mapErr(err, "count confirmed")
	}
	return count, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListConfirmedForDay(
	ctx context.Context,
	barberID string,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("appointment_time", "profile_id", "status").
		Where(
			"barber_id = ? AND appointment_date = ? AND status = ?",
			barberID, date, string(domain.StatusConfirmed),
		).
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, mapErr(err, "list confirmed for day")
	}

	return apps, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Barber").
		Preload("Service")

	if f.ProfileID != "" {
		q = q.Where("profile_id = ?", f.ProfileID)
	}
	if f.Date != "" {
		q = q.Where("appointment_date = ?", f.Date)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var apps []models.Appointment
	if err := q.
		Order("appointment_date DESC").
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, mapErr(err, "list appointments")
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
