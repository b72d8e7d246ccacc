package models

import "time"

type Profile struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	ProfileImage string `gorm:"size:500" json:"profile_image"`

	IsAdmin   bool   `gorm:"default:false" json:"is_admin"`
	PushToken string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) Role() string {
	if p.IsAdmin {
		return RoleAdmin
	}
	return RoleCustomer
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)
