package appointment

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
	loc  *time.Location
}

func NewGetAvailability(repo domain.Repository, loc *time.Location) *GetAvailability {
	return &GetAvailability{repo: repo, loc: loc}
}

// Execute consulta os confirmados do barbeiro no dia. Não grava nada e
// não guarda cache: duas chamadas sem escrita no meio dão o mesmo mapa.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (domain.BookedTimes, error) {

	if _, err := timezone.ParseDate(in.Date, uc.loc); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
		return nil, err
	}

	apps, err := uc.repo.ListConfirmedForDay(ctx, in.BarberID, in.Date)
	if err != nil {
		return nil, errors.Wrap(err, "resolve availability")
	}

	return domain.NewBookedTimes(apps), nil
}
