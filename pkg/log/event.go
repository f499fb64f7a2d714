package log

import (
	"time"

	"github.com/mash-protocol/mash-proxy/pkg/wire"
)

// Event represents a captured message or messaging error.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ParticipantID is the local participant that sent or received.
	ParticipantID string `cbor:"2,keyasint,omitempty"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (one of these will be set).
	Message *MessageEvent   `cbor:"5,keyasint,omitempty"`
	Error   *ErrorEventData `cbor:"6,keyasint,omitempty"`
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming message.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing message.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a routed message.
	CategoryMessage Category = 0
	// CategoryError indicates a failure on the messaging path.
	CategoryError Category = 1
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MessageEvent captures the routing header of a message.
type MessageEvent struct {
	Type      wire.MessageType `cbor:"1,keyasint"`
	MessageID string           `cbor:"2,keyasint"`
	Sender    string           `cbor:"3,keyasint,omitempty"`
	Recipient string           `cbor:"4,keyasint,omitempty"`
	ReplyTo   string           `cbor:"5,keyasint,omitempty"`

	// Size is the encoded message size in bytes.
	Size int `cbor:"6,keyasint,omitempty"`
}

// ErrorEventData captures an error on the messaging path.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}

// NewMessageEvent builds a message event for msg.
func NewMessageEvent(dir Direction, msg *wire.Message, size int) Event {
	return Event{
		Timestamp:     time.Now(),
		ParticipantID: localParticipant(dir, msg),
		Direction:     dir,
		Category:      CategoryMessage,
		Message: &MessageEvent{
			Type:      msg.Type,
			MessageID: msg.ID,
			Sender:    msg.Sender,
			Recipient: msg.Recipient,
			ReplyTo:   msg.ReplyTo,
			Size:      size,
		},
	}
}

// NewErrorEvent builds an error event for a failure while handling msg.
func NewErrorEvent(dir Direction, msg *wire.Message, err error, context string) Event {
	return Event{
		Timestamp:     time.Now(),
		ParticipantID: localParticipant(dir, msg),
		Direction:     dir,
		Category:      CategoryError,
		Error: &ErrorEventData{
			Message: err.Error(),
			Context: context,
		},
	}
}

func localParticipant(dir Direction, msg *wire.Message) string {
	if msg == nil {
		return ""
	}
	if dir == DirectionOut {
		return msg.Sender
	}
	return msg.Recipient
}
