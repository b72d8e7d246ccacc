package dto

import "time"

type AppointmentListDTO struct {
	ID           string    `json:"id"`
	Date         string    `json:"appointment_date"`
	Time         string    `json:"appointment_time"`
	DisplayTime  string    `json:"display_time"`
	Status       string    `json:"status"`
	BarberID     string    `json:"barber_id"`
	BarberName   string    `json:"barber_name"`
	ServiceID    string    `json:"service_id"`
	ServiceName  string    `json:"service_name"`
	ServicePrice float64   `json:"service_price"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	CreatedAt    time.Time `json:"created_at"`
}
