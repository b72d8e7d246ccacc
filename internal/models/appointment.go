package models

import "time"

// Appointment guarda data e hora como texto (YYYY-MM-DD e HH:MM:SS),
// sem fuso; a comparação de horários é feita pela forma canônica.
type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ProfileID string  `gorm:"type:uuid;index;not null" json:"profile_id"`
	Profile   Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BarberID string `gorm:"type:uuid;not null;index:idx_appointments_barber_day" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID string  `gorm:"type:uuid;not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AppointmentDate string `gorm:"size:10;not null;index:idx_appointments_barber_day" json:"appointment_date"`
	AppointmentTime string `gorm:"size:8;not null" json:"appointment_time"`

	Status string `gorm:"size:20;not null;default:'pending'" json:"status"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}
