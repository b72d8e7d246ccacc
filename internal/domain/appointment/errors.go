package appointment

import (
	"github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrSlotTaken vem da violação do índice único parcial de
	// agendamentos confirmados.
	ErrSlotTaken = errors.New("slot already confirmed")

	ErrForbidden = httperr.ErrBusiness("forbidden")
)
