package error_notificator

import "context"

type Notificator interface {
	// Notify reports a failed operation together with human readable details.
	Notify(ctx context.Context, op string, err error, details string) error
}
