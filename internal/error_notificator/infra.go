package error_notificator

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/go-utils/logger"
)

const service = "human_translator"

// Infra writes failures to the structured log. There is no operator channel
// beyond the log stream.
type Infra struct {
	log *logger.ZapLogger
}

func NewInfra(log *logger.ZapLogger) *Infra {
	return &Infra{log: log}
}

func (i *Infra) Notify(_ context.Context, op string, err error, details string) error {
	if i.log == nil {
		return fmt.Errorf("error_notificator: no logger for %s", op)
	}

	i.log.Log(logger.LogEntry{
		Level:   "error",
		Message: fmt.Sprintf("%s failed: %s", op, details),
		Error:   err,
		Service: service,
	})
	return nil
}
