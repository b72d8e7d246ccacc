package reminder

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Intent é um lembrete armado: dispara em FireAt para o agendamento.
type Intent struct {
	AppointmentID string
	FireAt        time.Time
}

// Store persiste intents. Claim remove e devolve os vencidos, de modo que
// cada intent é entregue no máximo uma vez.
type Store interface {
	Put(ctx context.Context, in Intent) error
	Remove(ctx context.Context, appointmentID string) error
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]Intent, error)
}

// FireAt calcula o horário do lembrete: início do agendamento menos lead,
// no fuso do negócio.
func FireAt(date, clockTime string, lead time.Duration, loc *time.Location) (time.Time, error) {
	start, err := timezone.At(date, clockTime, loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(-lead), nil
}
