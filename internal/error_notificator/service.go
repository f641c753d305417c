package error_notificator

import "context"

type Service struct {
	infra Notificator
}

func NewService(infra Notificator) *Service {
	return &Service{infra: infra}
}

func (s *Service) Notify(ctx context.Context, op string, err error, details string) error {
	if s == nil || s.infra == nil {
		return nil
	}
	return s.infra.Notify(ctx, op, err, details)
}
