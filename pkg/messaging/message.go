package messaging

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/mash-protocol/mash-proxy/pkg/qos"
	"github.com/mash-protocol/mash-proxy/pkg/wire"
)

// Messaging errors.
var (
	ErrMissingParticipant = errors.New("missing participant id")
	ErrMessageExpired     = errors.New("message expired")
	ErrRemote             = errors.New("remote error")
)

// NewRequestMessage wraps req in a Request message from one participant to
// another. The expiry date is now plus the TTL of q; the other QoS options
// are copied onto the envelope.
func NewRequestMessage(from, to string, q qos.MessagingQos, req *wire.Request) (*wire.Message, error) {
	if from == "" || to == "" {
		return nil, fmt.Errorf("%w: from %q, to %q", ErrMissingParticipant, from, to)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	payload, err := wire.EncodeRequest(req)
	if err != nil {
		return nil, err
	}

	msg := wire.NewMessage(wire.MessageTypeRequest)
	msg.Sender = from
	msg.Recipient = to
	msg.Payload = payload
	applyQos(msg, q, time.Now())
	return msg, nil
}

func applyQos(msg *wire.Message, q qos.MessagingQos, now time.Time) {
	msg.SetExpiry(now.Add(q.TTLOrDefault()))
	msg.Effort = q.EffortOrDefault()
	if q.Encrypt != nil {
		msg.Encrypted = *q.Encrypt
	}
	if q.Compress != nil {
		msg.Compressed = *q.Compress
	}
	if len(q.CustomHeaders) > 0 {
		msg.CustomHeaders = maps.Clone(q.CustomHeaders)
	}
}

// RemoteError is a failure reported by the provider in a Reply.
type RemoteError struct {
	Type    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Type == "" {
		return "remote error: " + e.Message
	}
	return fmt.Sprintf("remote error: %s: %s", e.Type, e.Message)
}

// Is matches ErrRemote.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}

// ReplyResults returns the positional results of reply, or a *RemoteError
// when the provider reported a failure.
func ReplyResults(reply *wire.Reply) ([]any, error) {
	if reply.Error != nil {
		return nil, &RemoteError{Type: reply.Error.Type, Message: reply.Error.Message}
	}
	return reply.Response, nil
}
