package appointment

import (
	"github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AvailabilityInput struct {
	BarberID string
	Date     string
}

// BookedTimes mapeia horário canônico (HH:MM:SS) para o cliente dono do
// agendamento confirmado. É recalculado a cada consulta.
type BookedTimes map[string]string

// NewBookedTimes ignora linhas que não estejam confirmadas ou cujo
// horário não seja legível.
func NewBookedTimes(apps []models.Appointment) BookedTimes {
	booked := make(BookedTimes, len(apps))
	for _, ap := range apps {
		if Status(ap.Status) != StatusConfirmed {
			continue
		}
		key, err := slot.NormalizeStorage(ap.AppointmentTime)
		if err != nil {
			continue
		}
		booked[key] = ap.ProfileID
	}
	return booked
}

func (b BookedTimes) IsAvailable(display string) bool {
	key, err := slot.ToStorage(display)
	if err != nil {
		return false
	}
	_, taken := b[key]
	return !taken
}

// BookedBy devolve o cliente dono do horário, se houver.
func (b BookedTimes) BookedBy(display string) (string, bool) {
	key, err := slot.ToStorage(display)
	if err != nil {
		return "", false
	}
	id, ok := b[key]
	return id, ok
}

type SlotView struct {
	Slot       string `json:"slot"`
	Time       string `json:"time"`
	Available  bool   `json:"available"`
	BookedByMe bool   `json:"booked_by_me"`
}

// Slots aplica o mapa à grade completa, na ordem da grade.
func (b BookedTimes) Slots(viewerID string) []SlotView {
	grid := slot.Catalog()
	out := make([]SlotView, 0, len(grid))
	for _, display := range grid {
		owner, taken := b.BookedBy(display)
		out = append(out, SlotView{
			Slot:       display,
			Time:       slot.MustStorage(display),
			Available:  !taken,
			BookedByMe: taken && viewerID != "" && owner == viewerID,
		})
	}
	return out
}
