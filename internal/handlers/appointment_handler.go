package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// USE CASE PORTS
// ======================================================

type availabilityService interface {
	Execute(ctx context.Context, in domain.AvailabilityInput) (domain.BookedTimes, error)
}

type createAppointmentService interface {
	Execute(ctx context.Context, in appointment.CreateAppointmentInput) (*models.Appointment, error)
}

type listAppointmentsService interface {
	Execute(ctx context.Context, in appointment.ListAppointmentsInput) ([]dto.AppointmentListDTO, error)
}

type cancelAppointmentService interface {
	Execute(ctx context.Context, profileID, appointmentID string) (*models.Appointment, error)
}

type updateStatusService interface {
	Execute(ctx context.Context, in appointment.UpdateStatusInput) (*models.Appointment, error)
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	availability availabilityService
	create       createAppointmentService
	list         listAppointmentsService
	cancel       cancelAppointmentService
	updateStatus updateStatusService
}

func NewAppointmentHandler(
	availability availabilityService,
	create createAppointmentService,
	list listAppointmentsService,
	cancel cancelAppointmentService,
	updateStatus updateStatusService,
) *AppointmentHandler {
	return &AppointmentHandler{
		availability: availability,
		create:       create,
		list:         list,
		cancel:       cancel,
		updateStatus: updateStatus,
	}
}

// ======================================================
// REQUESTS / RESPONSES
// ======================================================

// Date e Time sem "required": ausência vira missing_date_or_time no caso de uso.
type CreateAppointmentRequest struct {
	BarberID  string `json:"barber_id" binding:"required"`
	ServiceID string `json:"service_id" binding:"required"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AppointmentResponse struct {
	ID          string     `json:"id"`
	ProfileID   string     `json:"profile_id"`
	BarberID    string     `json:"barber_id"`
	ServiceID   string     `json:"service_id"`
	Date        string     `json:"appointment_date"`
	Time        string     `json:"appointment_time"`
	DisplayTime string     `json:"display_time"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type AvailabilityResponse struct {
	BarberID string            `json:"barber_id"`
	Date     string            `json:"date"`
	Slots    []domain.SlotView `json:"slots"`
}

func toAppointmentResponse(ap *models.Appointment) AppointmentResponse {
	display, err := slot.ToDisplay(ap.AppointmentTime)
	if err != nil {
		display = ap.AppointmentTime
	}
	return AppointmentResponse{
		ID:          ap.ID,
		ProfileID:   ap.ProfileID,
		BarberID:    ap.BarberID,
		ServiceID:   ap.ServiceID,
		Date:        ap.AppointmentDate,
		Time:        ap.AppointmentTime,
		DisplayTime: display,
		Status:      ap.Status,
		CreatedAt:   ap.CreatedAt,
		UpdatedAt:   ap.UpdatedAt,
	}
}

// ======================================================
// SLOTS / AVAILABILITY
// ======================================================

// Slots devolve a grade fixa de horários.
func (h *AppointmentHandler) Slots(c *gin.Context) {
	httpresp.OK(c, gin.H{"slots": slot.Catalog()})
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	barberID := c.Param("id")
	date := c.Query("date")

	if date == "" {
		httperr.BadRequest(c, "invalid_date", "Informe a data (YYYY-MM-DD).")
		return
	}
	if !validID(barberID) {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	booked, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID: barberID,
		Date:     date,
	})
	if err != nil {
		writeError(c, err, "availability_failed")
		return
	}

	httpresp.OK(c, AvailabilityResponse{
		BarberID: barberID,
		Date:     date,
		Slots:    booked.Slots(middleware.UserID(c)),
	})
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if !validID(req.BarberID) {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}
	if !validID(req.ServiceID) {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		ProfileID: middleware.UserID(c),
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
	})
	if err != nil {
		writeError(c, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, toAppointmentResponse(ap))
}

// List: admin vê todos, cliente só os próprios.
func (h *AppointmentHandler) List(c *gin.Context) {
	items, err := h.list.Execute(c.Request.Context(), appointment.ListAppointmentsInput{
		ProfileID: middleware.UserID(c),
		IsAdmin:   middleware.IsAdmin(c),
		Date:      c.Query("date"),
		Status:    c.Query("status"),
	})
	if err != nil {
		writeError(c, err, "failed_to_list_appointments")
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		writeError(c, err, "failed_to_cancel_appointment")
		return
	}

	httpresp.OK(c, toAppointmentResponse(ap))
}

// ======================================================
// ADMIN
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if !validID(id) {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), appointment.UpdateStatusInput{
		ActorID:       middleware.UserID(c),
		AppointmentID: id,
		Status:        req.Status,
	})
	if err != nil {
		writeError(c, err, "failed_to_update_status")
		return
	}

	httpresp.OK(c, toAppointmentResponse(ap))
}
