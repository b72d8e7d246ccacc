package handlers

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

type UpdateMeRequest struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

type PushTokenRequest struct {
	Token string `json:"token"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	profile, ok := h.load(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"role":    profile.Role(),
	})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	profile, ok := h.load(c)
	if !ok {
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome não pode ficar vazio.")
			return
		}
		updates["name"] = name
		profile.Name = name
	}
	if req.Phone != nil {
		profile.Phone = strings.TrimSpace(*req.Phone)
		updates["phone"] = profile.Phone
	}
	if req.ProfileImage != nil {
		profile.ProfileImage = strings.TrimSpace(*req.ProfileImage)
		updates["profile_image"] = profile.ProfileImage
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.Request.Context()).
			Model(&models.Profile{}).
			Where("id = ?", profile.ID).
			Updates(updates).Error; err != nil {
			httperr.Internal(c, "failed_to_update_profile", "Erro ao atualizar perfil.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"role":    profile.Role(),
	})
}

// SavePushToken grava (ou limpa, com token vazio) o destino das notificações.
func (h *MeHandler) SavePushToken(c *gin.Context) {
	var req PushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Profile{}).
		Where("id = ?", middleware.UserID(c)).
		Update("push_token", strings.TrimSpace(req.Token))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_save_push_token", "Erro ao salvar token.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "profile_not_found", "Perfil não encontrado.")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MeHandler) load(c *gin.Context) (*models.Profile, bool) {
	var profile models.Profile
	err := h.db.WithContext(c.Request.Context()).
		First(&profile, "id = ?", middleware.UserID(c)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "profile_not_found", "Perfil não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_load_profile", "Erro ao carregar perfil.")
		return nil, false
	}
	return &profile, true
}
