package handlers

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit Auditor
}

func NewServiceHandler(db *gorm.DB, audit Auditor) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"min=0"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// --------- Handlers ---------

// ListByBarber devolve os serviços ativos de um barbeiro ativo.
func (h *ServiceHandler) ListByBarber(c *gin.Context) {
	barberID := c.Param("id")
	if !h.barberExists(c, barberID, true) {
		return
	}

	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("barber_id = ? AND is_active = ?", barberID, true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	barberID := c.Param("id")

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if !h.barberExists(c, barberID, false) {
		return
	}

	service := models.Service{
		BarberID:    barberID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		DurationMin: req.DurationMin,
		Price:       req.Price,
		IsActive:    true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	h.record(c, "service_created", service.ID)
	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	service, ok := h.load(c, c.Param("id"))
	if !ok {
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome não pode ficar vazio.")
			return
		}
		service.Name = name
	}
	if req.Description != nil {
		service.Description = strings.TrimSpace(*req.Description)
	}
	if req.DurationMin != nil {
		if *req.DurationMin < 1 {
			httperr.BadRequest(c, "invalid_duration", "Duração deve ser de ao menos 1 minuto.")
			return
		}
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "Preço não pode ser negativo.")
			return
		}
		service.Price = *req.Price
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Omit(clause.Associations).Save(service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	h.record(c, "service_updated", service.ID)
	httpresp.OK(c, service)
}

// Delete desativa o serviço; agendamentos antigos continuam apontando para ele.
func (h *ServiceHandler) Delete(c *gin.Context) {
	service, ok := h.load(c, c.Param("id"))
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(service).
		Update("is_active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Erro ao remover serviço.")
		return
	}

	h.record(c, "service_deactivated", service.ID)
	c.Status(http.StatusNoContent)
}

// --------- Helpers ---------

func (h *ServiceHandler) barberExists(c *gin.Context, barberID string, activeOnly bool) bool {
	if !validID(barberID) {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return false
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.Barber{}).Where("id = ?", barberID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_load_barber", "Erro ao carregar barbeiro.")
		return false
	}
	if count == 0 {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return false
	}
	return true
}

func (h *ServiceHandler) load(c *gin.Context, id string) (*models.Service, bool) {
	if !validID(id) {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return nil, false
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&service, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_load_service", "Erro ao carregar serviço.")
		return nil, false
	}
	return &service, true
}

func (h *ServiceHandler) record(c *gin.Context, action, serviceID string) {
	h.audit.Dispatch(audit.Event{
		ProfileID: audit.Ptr(middleware.UserID(c)),
		Action:    action,
		Entity:    "service",
		EntityID:  audit.Ptr(serviceID),
	})
}
