package email

import (
	"context"

	"github.com/jwalitptl/medclinic-admin/pkg/circuitbreaker"
)

type guardedService struct {
	next    Service
	breaker *circuitbreaker.CircuitBreaker
}

// WithBreaker guards next with breaker. While the breaker is open sends
// fail with circuitbreaker.ErrOpen without dialing.
func WithBreaker(next Service, breaker *circuitbreaker.CircuitBreaker) Service {
	return &guardedService{next: next, breaker: breaker}
}

func (s *guardedService) SendCustom(ctx context.Context, to string, subject string, content string) error {
	return s.breaker.Execute(func() error {
		return s.next.SendCustom(ctx, to, subject, content)
	})
}
