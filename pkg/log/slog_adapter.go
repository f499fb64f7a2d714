package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes message events to an slog.Logger.
// Useful for development when you want to see traffic in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("direction", event.Direction.String()),
		slog.String("category", event.Category.String()),
	}
	if event.ParticipantID != "" {
		attrs = append(attrs, slog.String("participant", event.ParticipantID))
	}

	switch {
	case event.Message != nil:
		attrs = append(attrs,
			slog.String("msg_id", event.Message.MessageID),
			slog.String("msg_type", event.Message.Type.String()),
			slog.Int("size", event.Message.Size),
		)
		if event.Message.Recipient != "" {
			attrs = append(attrs, slog.String("recipient", event.Message.Recipient))
		}
		if event.Message.ReplyTo != "" {
			attrs = append(attrs, slog.String("reply_to", event.Message.ReplyTo))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "message", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
