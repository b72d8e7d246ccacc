package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/imaging"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const maxImageUploadBytes = 8 << 20

type BarberHandler struct {
	db     *gorm.DB
	images ImageStore
	audit  Auditor
}

// NewBarberHandler aceita images nil: o upload responde 503.
func NewBarberHandler(db *gorm.DB, images ImageStore, audit Auditor) *BarberHandler {
	return &BarberHandler{db: db, images: images, audit: audit}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name       string `json:"name" binding:"required"`
	Experience string `json:"experience"`
	About      string `json:"about"`
	ImageURL   string `json:"image_url"`
}

type UpdateBarberRequest struct {
	Name       *string `json:"name,omitempty"`
	Experience *string `json:"experience,omitempty"`
	About      *string `json:"about,omitempty"`
	ImageURL   *string `json:"image_url,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

type BarberView struct {
	models.Barber
	IsFavorite bool `json:"is_favorite"`
}

// --------- Public ---------

func (h *BarberHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	q := h.db.WithContext(ctx).Where("is_active = ?", true)
	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+query+"%")
	}

	var barbers []models.Barber
	if err := q.Order("name ASC").Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	favorites := map[string]bool{}
	if userID := middleware.UserID(c); userID != "" {
		var ids []string
		if err := h.db.WithContext(ctx).
			Model(&models.Favorite{}).
			Where("profile_id = ?", userID).
			Pluck("barber_id", &ids).Error; err != nil {
			httperr.Internal(c, "failed_to_list_favorites", "Erro ao carregar favoritos.")
			return
		}
		for _, id := range ids {
			favorites[id] = true
		}
	}

	out := make([]BarberView, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, BarberView{Barber: b, IsFavorite: favorites[b.ID]})
	}

	httpresp.List(c, out)
}

func (h *BarberHandler) Get(c *gin.Context) {
	barber, ok := h.load(c, c.Param("id"), true)
	if !ok {
		return
	}

	view := BarberView{Barber: *barber}
	if userID := middleware.UserID(c); userID != "" {
		var count int64
		if err := h.db.WithContext(c.Request.Context()).
			Model(&models.Favorite{}).
			Where("profile_id = ? AND barber_id = ?", userID, barber.ID).
			Count(&count).Error; err != nil {
			httperr.Internal(c, "failed_to_list_favorites", "Erro ao carregar favoritos.")
			return
		}
		view.IsFavorite = count > 0
	}

	httpresp.OK(c, view)
}

// --------- Admin ---------

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	barber := models.Barber{
		Name:       strings.TrimSpace(req.Name),
		Experience: strings.TrimSpace(req.Experience),
		About:      strings.TrimSpace(req.About),
		ImageURL:   strings.TrimSpace(req.ImageURL),
		IsActive:   true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Erro ao criar barbeiro.")
		return
	}

	h.record(c, "barber_created", barber.ID, nil)
	httpresp.Created(c, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	barber, ok := h.load(c, c.Param("id"), false)
	if !ok {
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome não pode ficar vazio.")
			return
		}
		barber.Name = name
	}
	if req.Experience != nil {
		barber.Experience = strings.TrimSpace(*req.Experience)
	}
	if req.About != nil {
		barber.About = strings.TrimSpace(*req.About)
	}
	if req.ImageURL != nil {
		barber.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.IsActive != nil {
		barber.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Save(barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao atualizar barbeiro.")
		return
	}

	h.record(c, "barber_updated", barber.ID, nil)
	httpresp.OK(c, barber)
}

// Delete desativa o barbeiro; histórico de agendamentos é preservado.
func (h *BarberHandler) Delete(c *gin.Context) {
	barber, ok := h.load(c, c.Param("id"), false)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(barber).
		Update("is_active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_barber", "Erro ao remover barbeiro.")
		return
	}

	h.record(c, "barber_deactivated", barber.ID, nil)
	c.Status(http.StatusNoContent)
}

// UploadImage converte a foto para WebP (lado máximo 600px) e grava no S3.
func (h *BarberHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_disabled", "Armazenamento de imagens não configurado.")
		return
	}

	barber, ok := h.load(c, c.Param("id"), false)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageUploadBytes)

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Envie o arquivo no campo image.")
		return
	}

	file, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Não foi possível ler a imagem.")
		return
	}
	defer file.Close()

	encoded, err := imaging.ToWebP(file, imaging.MaxSide, imaging.DefaultQuality)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedImage) {
			httperr.BadRequest(c, "unsupported_image", "Formato de imagem não suportado.")
			return
		}
		_ = c.Error(err)
		httperr.Internal(c, "image_conversion_failed", "Erro ao processar imagem.")
		return
	}

	key := fmt.Sprintf("barbers/%s/%s.webp", barber.ID, uuid.NewString())
	url, err := h.images.Put(c.Request.Context(), key, imaging.ContentType, encoded)
	if err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "image_upload_failed", "Erro ao enviar imagem.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(barber).
		Update("image_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao atualizar barbeiro.")
		return
	}
	barber.ImageURL = url

	h.record(c, "barber_image_uploaded", barber.ID, map[string]any{"key": key})
	httpresp.OK(c, barber)
}

// --------- Helpers ---------

func (h *BarberHandler) load(c *gin.Context, id string, activeOnly bool) (*models.Barber, bool) {
	if !validID(id) {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return nil, false
	}

	q := h.db.WithContext(c.Request.Context())
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var barber models.Barber
	if err := q.First(&barber, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_load_barber", "Erro ao carregar barbeiro.")
		return nil, false
	}
	return &barber, true
}

func (h *BarberHandler) record(c *gin.Context, action, barberID string, meta map[string]any) {
	h.audit.Dispatch(audit.Event{
		ProfileID: audit.Ptr(middleware.UserID(c)),
		Action:    action,
		Entity:    "barber",
		EntityID:  audit.Ptr(barberID),
		Metadata:  meta,
	})
}

// validID evita mandar ao Postgres um texto que não é uuid.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
