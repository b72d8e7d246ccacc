package handlers

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
)

type Auditor interface {
	Dispatch(ev audit.Event)
}

// ImageStore grava a imagem e devolve a URL pública.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}
