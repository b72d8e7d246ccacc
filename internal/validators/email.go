package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// Resolver é o subconjunto de *net.Resolver usado na validação.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

type EmailValidator struct {
	resolver Resolver
	timeout  time.Duration
}

func NewEmailValidator(r Resolver) *EmailValidator {
	if r == nil {
		r = net.DefaultResolver
	}
	return &EmailValidator{resolver: r, timeout: 3 * time.Second}
}

// IsDomainValid aceita o domínio com registro MX ou, na falta, com IP.
func (v *EmailValidator) IsDomainValid(ctx context.Context, email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	if mx, err := v.resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := v.resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
