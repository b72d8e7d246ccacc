package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID gera ids ordenáveis por tempo (UUID v7), com fallback para v4.
func newID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

func ensureID(id *string) {
	if *id == "" {
		*id = newID()
	}
}

func (p *Profile) BeforeCreate(*gorm.DB) error     { ensureID(&p.ID); return nil }
func (b *Barber) BeforeCreate(*gorm.DB) error      { ensureID(&b.ID); return nil }
func (s *Service) BeforeCreate(*gorm.DB) error     { ensureID(&s.ID); return nil }
func (a *Appointment) BeforeCreate(*gorm.DB) error { ensureID(&a.ID); return nil }
func (r *Review) BeforeCreate(*gorm.DB) error      { ensureID(&r.ID); return nil }
func (f *Favorite) BeforeCreate(*gorm.DB) error    { ensureID(&f.ID); return nil }
