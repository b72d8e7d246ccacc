package models

import "time"

type Review struct {
	ID        string  `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID string  `gorm:"type:uuid;index;not null" json:"profile_id"`
	Profile   Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	BarberID  string  `gorm:"type:uuid;index;not null" json:"barber_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}

type Favorite struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID string `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_profile_barber" json:"profile_id"`
	BarberID  string `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_profile_barber" json:"barber_id"`
	Barber    Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barber"`

	CreatedAt time.Time `json:"created_at"`
}
