//go:build integration

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgDatabase = "booking"
)

// ----------------------------------------------------------------------------
// Suite: catálogo (serviços, avaliações, favoritos) sobre Postgres real
// ----------------------------------------------------------------------------

type CatalogSuite struct {
	suite.Suite
	container testcontainers.Container
	db        *gorm.DB
	router    *gin.Engine

	customer models.Profile
	admin    models.Profile
	barber   models.Barber
	service  models.Service
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogSuite))
}

func dsn(host string, port nat.Port) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		pgUser, pgPassword, host, port.Port(), pgDatabase)
}

// asUser faz o papel do AuthMiddleware: lê o usuário dos headers de teste.
func asUser(c *gin.Context) {
	if id := c.GetHeader("X-Test-User"); id != "" {
		c.Set(middleware.ContextUserID, id)
		c.Set(middleware.ContextUserRole, c.GetHeader("X-Test-Role"))
	}
	c.Next()
}

func (s *CatalogSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     pgUser,
			"POSTGRES_PASSWORD": pgPassword,
			"POSTGRES_DB":       pgDatabase,
		},
		Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw"},
		WaitingFor: wait.ForSQL("5432/tcp", "pgx", dsn).
			WithStartupTimeout(60 * time.Second),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err)
	s.container = c

	host, err := c.Host(ctx)
	s.Require().NoError(err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	s.Require().NoError(err)

	s.db, err = gorm.Open(postgres.Open(dsn(host, port)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(dbpkg.Migrate(s.db))

	services := NewServiceHandler(s.db, discardAudit{})
	reviews := NewReviewHandler(s.db, discardAudit{})
	favorites := NewFavoriteHandler(s.db)
	barbers := NewBarberHandler(s.db, nil, discardAudit{})

	r := gin.New()
	r.Use(asUser)
	r.GET("/barbers/:id", barbers.Get)
	r.GET("/barbers/:id/services", services.ListByBarber)
	r.POST("/barbers/:id/reviews", reviews.Create)
	r.POST("/me/favorites/:barberId", favorites.Toggle)
	r.DELETE("/admin/services/:id", services.Delete)
	r.DELETE("/admin/reviews/:id", reviews.Delete)
	s.router = r
}

func (s *CatalogSuite) TearDownSuite() {
	if s.db != nil {
		_ = dbpkg.Close(s.db)
	}
	if s.container != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.container.Terminate(ctx)
	}
}

func (s *CatalogSuite) SetupTest() {
	s.Require().NoError(s.db.Exec(
		"TRUNCATE appointments, reviews, favorites, services, barbers, profiles, audit_logs CASCADE",
	).Error)

	s.customer = models.Profile{Name: "Ana", Email: "ana@example.com", PasswordHash: "x"}
	s.admin = models.Profile{Name: "Bruno", Email: "bruno@example.com", PasswordHash: "x", IsAdmin: true}
	s.Require().NoError(s.db.Create(&s.customer).Error)
	s.Require().NoError(s.db.Create(&s.admin).Error)

	s.barber = models.Barber{Name: "Rafael", IsActive: true}
	s.Require().NoError(s.db.Create(&s.barber).Error)

	s.service = models.Service{BarberID: s.barber.ID, Name: "Corte", DurationMin: 30, Price: 40, IsActive: true}
	s.Require().NoError(s.db.Omit("Barber").Create(&s.service).Error)
}

// ----------------------------------------------------------------------------
// Helpers
// ----------------------------------------------------------------------------

func (s *CatalogSuite) do(method, path string, user *models.Profile, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req.Header.Set("X-Test-User", user.ID)
		role := models.RoleCustomer
		if user.IsAdmin {
			role = models.RoleAdmin
		}
		req.Header.Set("X-Test-Role", role)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *CatalogSuite) review(user *models.Profile, rating int) models.Review {
	w := s.do(http.MethodPost, "/barbers/"+s.barber.ID+"/reviews", user, gin.H{"rating": rating, "comment": "ok"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var out models.Review
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (s *CatalogSuite) rating() *float64 {
	var b models.Barber
	s.Require().NoError(s.db.First(&b, "id = ?", s.barber.ID).Error)
	return b.Rating
}

// ----------------------------------------------------------------------------
// Tests
// ----------------------------------------------------------------------------

func (s *CatalogSuite) TestRatingFollowsReviews() {
	first := s.review(&s.customer, 4)
	s.Require().NotNil(s.rating())
	s.InDelta(4.0, *s.rating(), 0.001)

	second := s.review(&s.admin, 5)
	s.Require().NotNil(s.rating())
	s.InDelta(4.5, *s.rating(), 0.001)

	w := s.do(http.MethodDelete, "/admin/reviews/"+first.ID, &s.admin, nil)
	s.Require().Equal(http.StatusNoContent, w.Code)
	s.Require().NotNil(s.rating())
	s.InDelta(5.0, *s.rating(), 0.001)

	w = s.do(http.MethodDelete, "/admin/reviews/"+second.ID, &s.admin, nil)
	s.Require().Equal(http.StatusNoContent, w.Code)
	s.Nil(s.rating())
}

func (s *CatalogSuite) TestDeleteUnknownReview() {
	w := s.do(http.MethodDelete, "/admin/reviews/0190b2a4-7c1e-7d3a-9f00-00000000ffff", &s.admin, nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("review_not_found", decodeError(s.T(), w).Code)
}

func (s *CatalogSuite) TestReviewOnInactiveBarber() {
	s.Require().NoError(s.db.Model(&s.barber).Update("is_active", false).Error)

	w := s.do(http.MethodPost, "/barbers/"+s.barber.ID+"/reviews", &s.customer, gin.H{"rating": 5})
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("barber_not_found", decodeError(s.T(), w).Code)

	var count int64
	s.Require().NoError(s.db.Model(&models.Review{}).Count(&count).Error)
	s.Zero(count)
}

func (s *CatalogSuite) TestFavoriteToggle() {
	type toggled struct {
		BarberID string `json:"barber_id"`
		Favorite bool   `json:"favorite"`
	}
	path := "/me/favorites/" + s.barber.ID

	var out toggled
	w := s.do(http.MethodPost, path, &s.customer, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	s.Equal(toggled{BarberID: s.barber.ID, Favorite: true}, out)

	var view BarberView
	w = s.do(http.MethodGet, "/barbers/"+s.barber.ID, &s.customer, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &view))
	s.True(view.IsFavorite)

	w = s.do(http.MethodPost, path, &s.customer, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	s.Equal(toggled{BarberID: s.barber.ID, Favorite: false}, out)

	var count int64
	s.Require().NoError(s.db.Model(&models.Favorite{}).Count(&count).Error)
	s.Zero(count)
}

func (s *CatalogSuite) TestServiceDeleteDeactivates() {
	type listed struct {
		Data  []models.Service `json:"data"`
		Total int              `json:"total"`
	}

	var before listed
	w := s.do(http.MethodGet, "/barbers/"+s.barber.ID+"/services", nil, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &before))
	s.Equal(1, before.Total)

	w = s.do(http.MethodDelete, "/admin/services/"+s.service.ID, &s.admin, nil)
	s.Require().Equal(http.StatusNoContent, w.Code)

	var stored models.Service
	s.Require().NoError(s.db.First(&stored, "id = ?", s.service.ID).Error)
	s.False(stored.IsActive)

	var after listed
	w = s.do(http.MethodGet, "/barbers/"+s.barber.ID+"/services", nil, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &after))
	s.Zero(after.Total)
	s.Empty(after.Data)
}

func (s *CatalogSuite) TestGetBarberFavoriteLookupFailure() {
	s.Require().NoError(s.db.Exec("ALTER TABLE favorites RENAME TO favorites_off").Error)
	defer func() {
		s.Require().NoError(s.db.Exec("ALTER TABLE favorites_off RENAME TO favorites").Error)
	}()

	w := s.do(http.MethodGet, "/barbers/"+s.barber.ID, &s.customer, nil)
	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("failed_to_list_favorites", decodeError(s.T(), w).Code)

	w = s.do(http.MethodGet, "/barbers/"+s.barber.ID, nil, nil)
	s.Equal(http.StatusOK, w.Code)
}
