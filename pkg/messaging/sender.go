package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mash-protocol/mash-proxy/pkg/log"
	"github.com/mash-protocol/mash-proxy/pkg/qos"
	"github.com/mash-protocol/mash-proxy/pkg/routing"
	"github.com/mash-protocol/mash-proxy/pkg/wire"
)

// Transport delivers encoded messages.
type Transport interface {
	Send(ctx context.Context, data []byte) error
}

// Option configures a Sender.
type Option func(*Sender)

// WithLogger sets the operational logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sender) { s.logger = l }
}

// WithProtocolLogger sets the logger that records every sent message.
// A nil logger keeps capture disabled.
func WithProtocolLogger(l log.Logger) Option {
	return func(s *Sender) {
		if l != nil {
			s.protocolLogger = l
		}
	}
}

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Sender) { s.now = now }
}

// Sender stamps, encodes and sends messages.
type Sender struct {
	transport Transport
	resolver  *routing.ReplyResolver

	logger         *slog.Logger
	protocolLogger log.Logger
	now            func() time.Time
}

// NewSender creates a sender writing to transport.
func NewSender(transport Transport, resolver *routing.ReplyResolver, opts ...Option) *Sender {
	s := &Sender{
		transport:      transport,
		resolver:       resolver,
		protocolLogger: log.NoopLogger{},
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send stamps the reply-to address onto msg, encodes it and hands it to the
// transport. Expired messages are dropped with ErrMessageExpired and left
// unchanged.
func (s *Sender) Send(ctx context.Context, msg *wire.Message) error {
	if msg.Expired(s.now()) {
		err := fmt.Errorf("%w: %s", ErrMessageExpired, msg.ID)
		s.fail(msg, err, "check expiry")
		return err
	}
	if err := s.resolver.Apply(msg); err != nil {
		s.fail(msg, err, "resolve reply address")
		return err
	}

	data, err := wire.EncodeMessage(msg)
	if err != nil {
		s.fail(msg, err, "encode")
		return err
	}

	if err := s.transport.Send(ctx, data); err != nil {
		s.fail(msg, err, "transport send")
		return fmt.Errorf("send %s: %w", msg.ID, err)
	}

	s.protocolLogger.Log(log.NewMessageEvent(log.DirectionOut, msg, len(data)))
	if s.logger != nil {
		s.logger.Debug("message sent",
			"id", msg.ID,
			"type", msg.Type.String(),
			"recipient", msg.Recipient,
			"size", len(data))
	}
	return nil
}

// SendRequest builds a Request message and sends it.
func (s *Sender) SendRequest(ctx context.Context, from, to string, q qos.MessagingQos, req *wire.Request) (*wire.Message, error) {
	msg, err := NewRequestMessage(from, to, q, req)
	if err != nil {
		return nil, err
	}
	if err := s.Send(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *Sender) fail(msg *wire.Message, err error, op string) {
	s.protocolLogger.Log(log.NewErrorEvent(log.DirectionOut, msg, err, op))
	if s.logger != nil {
		s.logger.Debug("message not sent",
			"id", msg.ID,
			"op", op,
			"error", err)
	}
}
