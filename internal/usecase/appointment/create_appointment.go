package appointment

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/push"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ProfileID string
	BarberID  string
	ServiceID string

	Date string // YYYY-MM-DD
	Time string // horário da grade, ex. "02:00 PM"
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo         domain.Repository
	availability *GetAvailability
	audit        Auditor
	notifier     Notifier
	clock        clock.Clock
	loc          *time.Location
	log          *slog.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	availability *GetAvailability,
	audit Auditor,
	notifier Notifier,
	clk clock.Clock,
	loc *time.Location,
	log *slog.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:         repo,
		availability: availability,
		audit:        audit,
		notifier:     notifier,
		clock:        clk,
		loc:          loc,
		log:          log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute revalida o horário e grava o agendamento como pendente.
// Verificação e inserção não são atômicas: dois pedidos simultâneos para
// o mesmo horário livre podem ambos virar pendentes.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Data / horário
	// --------------------------------------------------
	if in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("missing_date_or_time")
	}

	if _, err := timezone.ParseDate(in.Date, uc.loc); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if in.Date < timezone.Today(uc.clock.Now(), uc.loc) {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	storageTime, err := slot.ToStorage(in.Time)
	if err != nil || !slot.IsCatalogSlot(in.Time) {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	// --------------------------------------------------
	// 2️⃣ Barbeiro e serviço
	// --------------------------------------------------
	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
		return nil, err
	}
	if !barber.IsActive {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}
	if !service.IsActive || service.BarberID != barber.ID {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// --------------------------------------------------
	// 3️⃣ Revalidação do horário (consulta nova)
	// --------------------------------------------------
	booked, err := uc.availability.Execute(ctx, domain.AvailabilityInput{
		BarberID: in.BarberID,
		Date:     in.Date,
	})
	if err != nil {
		return nil, err
	}
	if !booked.IsAvailable(in.Time) {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	// --------------------------------------------------
	// 4️⃣ Criação do agendamento (status centralizado)
	// --------------------------------------------------
	ap := &models.Appointment{
		ProfileID:       in.ProfileID,
		BarberID:        barber.ID,
		ServiceID:       service.ID,
		AppointmentDate: in.Date,
		AppointmentTime: storageTime,
		Status:          string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria + aviso aos administradores
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ProfileID: audit.Ptr(in.ProfileID),
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  audit.Ptr(ap.ID),
		Metadata: map[string]any{
			"barber_id": barber.ID,
			"date":      in.Date,
			"time":      storageTime,
		},
	})

	uc.notifyAdmins(ctx, ap, barber, service, in.Time)

	return ap, nil
}

func (uc *CreateAppointment) notifyAdmins(
	ctx context.Context,
	ap *models.Appointment,
	barber *models.Barber,
	service *models.Service,
	display string,
) {
	tokens, err := uc.repo.ListAdminPushTokens(ctx)
	if err != nil {
		uc.log.Warn("admin push tokens lookup failed", slog.Any("err", err))
		return
	}
	if len(tokens) == 0 {
		return
	}

	var customer string
	if p, err := uc.repo.GetProfile(ctx, ap.ProfileID); err == nil {
		customer = p.Name
	}

	body := push.BookingCreatedBody(barber.Name, service.Name, ap.AppointmentDate, display, customer)
	for _, token := range tokens {
		uc.notifier.Dispatch(push.Notification(
			token,
			push.TitleBookingCreated,
			body,
			map[string]any{"appointment_id": ap.ID},
		))
	}
}
