package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// DomainChecker valida o domínio do e-mail no cadastro.
type DomainChecker interface {
	IsDomainValid(ctx context.Context, email string) bool
}

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	emails DomainChecker
	audit  Auditor
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, emails DomainChecker, audit Auditor) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, emails: emails, audit: audit}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Profile *models.Profile `json:"profile"`
	Role    string          `json:"role"`
	Token   string          `json:"token"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.emails.IsDomainValid(c.Request.Context(), email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Profile{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_check_email", "Erro ao verificar e-mail.")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "email_already_registered", "E-mail já cadastrado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar senha.")
		return
	}

	profile := models.Profile{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        strings.TrimSpace(req.Phone),
		IsAdmin:      h.config.IsAdminEmail(email),
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&profile).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_registered", "E-mail já cadastrado.")
			return
		}
		httperr.Internal(c, "failed_to_create_profile", "Erro ao criar conta.")
		return
	}

	token, err := h.generateToken(&profile)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar sessão.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ProfileID: audit.Ptr(profile.ID),
		Action:    "profile_registered",
		Entity:    "profile",
		EntityID:  audit.Ptr(profile.ID),
	})

	c.JSON(http.StatusCreated, AuthResponse{
		Profile: &profile,
		Role:    profile.Role(),
		Token:   token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var profile models.Profile
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&profile).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro ao autenticar.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	token, err := h.generateToken(&profile)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar sessão.")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Profile: &profile,
		Role:    profile.Role(),
		Token:   token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(p *models.Profile) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  p.ID,
		"role": p.Role(),
		"exp":  now.Add(h.config.JWTTTL).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
