package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type FavoriteHandler struct {
	db *gorm.DB
}

func NewFavoriteHandler(db *gorm.DB) *FavoriteHandler {
	return &FavoriteHandler{db: db}
}

func (h *FavoriteHandler) List(c *gin.Context) {
	var favorites []models.Favorite
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Barber").
		Where("profile_id = ?", middleware.UserID(c)).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		httperr.Internal(c, "failed_to_list_favorites", "Erro ao listar favoritos.")
		return
	}

	barbers := make([]models.Barber, 0, len(favorites))
	for _, f := range favorites {
		if f.Barber.IsActive {
			barbers = append(barbers, f.Barber)
		}
	}

	httpresp.List(c, barbers)
}

// Toggle marca ou desmarca o barbeiro e devolve o novo estado.
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	profileID := middleware.UserID(c)
	barberID := c.Param("barberId")
	if !validID(barberID) {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	res := db.Where("profile_id = ? AND barber_id = ?", profileID, barberID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_toggle_favorite", "Erro ao atualizar favorito.")
		return
	}
	if res.RowsAffected > 0 {
		httpresp.OK(c, gin.H{"barber_id": barberID, "favorite": false})
		return
	}

	var count int64
	if err := db.Model(&models.Barber{}).
		Where("id = ? AND is_active = ?", barberID, true).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_toggle_favorite", "Erro ao atualizar favorito.")
		return
	}
	if count == 0 {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	fav := models.Favorite{ProfileID: profileID, BarberID: barberID}
	if err := db.Omit("Barber").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error; err != nil {
		httperr.Internal(c, "failed_to_toggle_favorite", "Erro ao atualizar favorito.")
		return
	}

	httpresp.OK(c, gin.H{"barber_id": barberID, "favorite": true})
}
