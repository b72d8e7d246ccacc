package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ReviewHandler struct {
	db    *gorm.DB
	audit Auditor
}

func NewReviewHandler(db *gorm.DB, audit Auditor) *ReviewHandler {
	return &ReviewHandler{db: db, audit: audit}
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type ReviewView struct {
	ID           string    `json:"id"`
	BarberID     string    `json:"barber_id"`
	ProfileID    string    `json:"profile_id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

func (h *ReviewHandler) ListByBarber(c *gin.Context) {
	barberID := c.Param("id")
	if !validID(barberID) {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	var reviews []models.Review
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Profile").
		Where("barber_id = ?", barberID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Erro ao listar avaliações.")
		return
	}

	out := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewView{
			ID:           r.ID,
			BarberID:     r.BarberID,
			ProfileID:    r.ProfileID,
			CustomerName: r.Profile.Name,
			Rating:       r.Rating,
			Comment:      r.Comment,
			CreatedAt:    r.CreatedAt,
		})
	}

	httpresp.List(c, out)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	barberID := c.Param("id")

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if !validID(barberID) {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	review := models.Review{
		ProfileID: middleware.UserID(c),
		BarberID:  barberID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Barber{}).
			Where("id = ? AND is_active = ?", barberID, true).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return httperr.ErrBusiness("barber_not_found")
		}

		if err := tx.Omit("Profile").Create(&review).Error; err != nil {
			return errors.Wrap(err, "create review")
		}
		return recomputeRating(tx, barberID)
	})
	if err != nil {
		writeError(c, err, "failed_to_create_review")
		return
	}

	h.audit.Dispatch(audit.Event{
		ProfileID: audit.Ptr(review.ProfileID),
		Action:    "review_created",
		Entity:    "review",
		EntityID:  audit.Ptr(review.ID),
		Metadata:  map[string]any{"barber_id": barberID, "rating": review.Rating},
	})

	httpresp.Created(c, review)
}

// Delete (admin) remove a avaliação e recalcula a nota do barbeiro.
func (h *ReviewHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		httperr.NotFound(c, "review_not_found", "Avaliação não encontrada.")
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&review).Error; err != nil {
			return errors.Wrap(err, "delete review")
		}
		return recomputeRating(tx, review.BarberID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "review_not_found", "Avaliação não encontrada.")
			return
		}
		writeError(c, err, "failed_to_delete_review")
		return
	}

	h.audit.Dispatch(audit.Event{
		ProfileID: audit.Ptr(middleware.UserID(c)),
		Action:    "review_deleted",
		Entity:    "review",
		EntityID:  audit.Ptr(id),
	})

	c.Status(http.StatusNoContent)
}

// recomputeRating grava a média das avaliações; sem avaliações a nota fica nula.
func recomputeRating(tx *gorm.DB, barberID string) error {
	var avg sql.NullFloat64
	if err := tx.Model(&models.Review{}).
		Where("barber_id = ?", barberID).
		Select("AVG(rating)").
		Row().
		Scan(&avg); err != nil {
		return errors.Wrap(err, "average rating")
	}

	var rating *float64
	if avg.Valid {
		rating = &avg.Float64
	}

	return errors.Wrap(
		tx.Model(&models.Barber{}).Where("id = ?", barberID).Update("rating", rating).Error,
		"update rating",
	)
}
