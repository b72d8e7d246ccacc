package appointment

import (
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var allStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

func ParseStatus(s string) (Status, error) {
	for _, st := range allStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", httperr.ErrBusiness("invalid_status")
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Label é usado no texto das notificações ("in_progress" -> "in progress").
func (s Status) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// ===============================
// Validations
// ===============================

// CanTransition valida a mudança de status feita pelo administrador.
func CanTransition(current, next Status) error {
	if current.IsTerminal() || current == next {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCustomerCancel: o cliente só cancela o próprio agendamento pendente.
func CanCustomerCancel(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
