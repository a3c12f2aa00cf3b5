package mail

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender writes messages to the log instead of delivering them. Used when no
// SMTP relay is configured.
type LogSender struct {
	logger zerolog.Logger
}

// NewLogSender creates a new log sender.
func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("email not delivered: smtp disabled")
	return nil
}
