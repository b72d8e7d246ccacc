package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type ListAppointmentsInput struct {
	ProfileID string
	IsAdmin   bool
	Date      string
	Status    string
}

type ListAppointments struct {
	repo      domain.Repository
	reminders ReminderScheduler
	loc       *time.Location
}

func NewListAppointments(
	repo domain.Repository,
	reminders ReminderScheduler,
	loc *time.Location,
) *ListAppointments {
	return &ListAppointments{
		repo:      repo,
		reminders: reminders,
		loc:       loc,
	}
}

// Execute: admin vê tudo, cliente só os próprios. Para o cliente, os
// lembretes dos confirmados são (re)armados a cada listagem.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	filter := domain.ListFilter{Date: in.Date, Status: in.Status}
	if !in.IsAdmin {
		filter.ProfileID = in.ProfileID
	}

	if in.Date != "" {
		if _, err := timezone.ParseDate(in.Date, uc.loc); err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
	}
	if in.Status != "" {
		if _, err := domain.ParseStatus(in.Status); err != nil {
			return nil, err
		}
	}

	apps, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}

	if !in.IsAdmin {
		uc.reminders.ScheduleAll(ctx, apps)
	}

	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, toListDTO(ap))
	}

	return out, nil
}

func toListDTO(ap models.Appointment) dto.AppointmentListDTO {
	return dto.AppointmentListDTO{
		ID:           ap.ID,
		Date:         ap.AppointmentDate,
		Time:         ap.AppointmentTime,
		DisplayTime:  displayTime(ap.AppointmentTime),
		Status:       ap.Status,
		BarberID:     ap.BarberID,
		BarberName:   ap.Barber.Name,
		ServiceID:    ap.ServiceID,
		ServiceName:  ap.Service.Name,
		ServicePrice: ap.Service.Price,
		CustomerID:   ap.ProfileID,
		CustomerName: ap.Profile.Name,
		CreatedAt:    ap.CreatedAt,
	}
}

// displayTime cai para o valor guardado quando não for legível.
func displayTime(stored string) string {
	if d, err := slot.ToDisplay(stored); err == nil {
		return d
	}
	return stored
}
