package models

import "time"

type Barber struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name       string   `gorm:"size:100;not null" json:"name"`
	Experience string   `gorm:"size:100" json:"experience"`
	About      string   `gorm:"type:text" json:"about"`
	ImageURL   string   `gorm:"size:500" json:"image_url"`
	Rating     *float64 `json:"rating"`
	IsActive   bool     `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
