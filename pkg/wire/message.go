package wire

import (
	"errors"
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mash-protocol/mash-proxy/pkg/qos"
)

// Message errors.
var (
	ErrMissingMessageID  = errors.New("missing message id")
	ErrInvalidType       = errors.New("invalid message type")
	ErrMissingMethodName = errors.New("missing method name")
	ErrParamMismatch     = errors.New("parameter datatypes do not match parameters")
)

// MessageType classifies a Message.
type MessageType uint8

const (
	MessageTypeUnknown MessageType = iota
	MessageTypeRequest
	MessageTypeReply
	MessageTypeOneWay
	MessageTypeSubscriptionRequest
	MessageTypeBroadcastSubscriptionRequest
	MessageTypeMulticastSubscriptionRequest
	MessageTypeSubscriptionReply
	MessageTypeSubscriptionStop
	MessageTypePublication
	MessageTypeMulticast
)

// String returns the message type name.
func (t MessageType) String() string {
	names := []string{
		"unknown", "request", "reply", "oneWay",
		"subscriptionRequest", "broadcastSubscriptionRequest", "multicastSubscriptionRequest",
		"subscriptionReply", "subscriptionStop", "publication", "multicast",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// IsValid returns true for every known message type.
func (t MessageType) IsValid() bool {
	return t >= MessageTypeRequest && t <= MessageTypeMulticast
}

// IsReplyAddressable returns true if a message of this type expects an
// asynchronous answer and must therefore carry a reply-to address.
func (t MessageType) IsReplyAddressable() bool {
	switch t {
	case MessageTypeRequest,
		MessageTypeSubscriptionRequest,
		MessageTypeBroadcastSubscriptionRequest,
		MessageTypeMulticastSubscriptionRequest:
		return true
	default:
		return false
	}
}

// Message is the routable envelope handed to a transport.
//
// CBOR encoding:
//
//	{
//	  1: id,            // string (UUID)
//	  2: type,          // uint8
//	  3: sender,        // participant id
//	  4: recipient,     // participant id
//	  5: replyTo,       // serialized address, reply-addressable types only
//	  6: expiry,        // int64: unix milliseconds
//	  7: effort,        // uint8
//	  8: encrypted,     // bool
//	  9: compressed,    // bool
//	  10: customHeaders,
//	  11: payload       // encoded Request/Reply/...
//	}
type Message struct {
	ID            string            `cbor:"1,keyasint"`
	Type          MessageType       `cbor:"2,keyasint"`
	Sender        string            `cbor:"3,keyasint,omitempty"`
	Recipient     string            `cbor:"4,keyasint,omitempty"`
	ReplyTo       string            `cbor:"5,keyasint,omitempty"`
	Expiry        int64             `cbor:"6,keyasint,omitempty"`
	Effort        qos.Effort        `cbor:"7,keyasint,omitempty"`
	Encrypted     bool              `cbor:"8,keyasint,omitempty"`
	Compressed    bool              `cbor:"9,keyasint,omitempty"`
	CustomHeaders map[string]string `cbor:"10,keyasint,omitempty"`
	Payload       []byte            `cbor:"11,keyasint,omitempty"`
}

// NewMessage creates a message of the given type with a fresh ID.
func NewMessage(t MessageType) *Message {
	return &Message{
		ID:   uuid.NewString(),
		Type: t,
	}
}

// HasReplyTo returns true if a reply-to address is set.
func (m *Message) HasReplyTo() bool {
	return m.ReplyTo != ""
}

// SetExpiry sets the absolute expiry date.
func (m *Message) SetExpiry(t time.Time) {
	m.Expiry = t.UnixMilli()
}

// ExpiryTime returns the expiry date, or the zero time if none is set.
func (m *Message) ExpiryTime() time.Time {
	if m.Expiry == 0 {
		return time.Time{}
	}
	return time.UnixMilli(m.Expiry)
}

// Expired returns true if the message has an expiry date before now.
func (m *Message) Expired(now time.Time) bool {
	return m.Expiry != 0 && now.UnixMilli() > m.Expiry
}

// Validate checks if the message is valid.
func (m *Message) Validate() error {
	if m.ID == "" {
		return ErrMissingMessageID
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidType, m.Type)
	}
	return nil
}

// Request is the payload of a Request message: a remote method call.
//
// CBOR encoding:
//
//	{
//	  1: requestReplyId,  // string: correlates the Reply
//	  2: methodName,      // string
//	  3: paramDatatypes,  // array of type names
//	  4: params           // array of values
//	}
type Request struct {
	RequestReplyID string   `cbor:"1,keyasint"`
	MethodName     string   `cbor:"2,keyasint"`
	ParamDatatypes []string `cbor:"3,keyasint,omitempty"`
	Params         []any    `cbor:"4,keyasint,omitempty"`
}

// NewRequest creates a request with a fresh request-reply ID.
func NewRequest(methodName string, paramDatatypes []string, params []any) *Request {
	return &Request{
		RequestReplyID: uuid.NewString(),
		MethodName:     methodName,
		ParamDatatypes: paramDatatypes,
		Params:         params,
	}
}

// Validate checks if the request is valid.
func (r *Request) Validate() error {
	if r.MethodName == "" {
		return ErrMissingMethodName
	}
	if len(r.ParamDatatypes) != len(r.Params) {
		return fmt.Errorf("%w: %d datatypes, %d params", ErrParamMismatch, len(r.ParamDatatypes), len(r.Params))
	}
	return nil
}

// Reply is the payload of a Reply message.
//
// CBOR encoding:
//
//	{
//	  1: requestReplyId,  // string: matches the Request
//	  2: response,        // array of positional results
//	  3: error            // ErrorPayload, set on failure
//	}
type Reply struct {
	RequestReplyID string        `cbor:"1,keyasint"`
	Response       []any         `cbor:"2,keyasint,omitempty"`
	Error          *ErrorPayload `cbor:"3,keyasint,omitempty"`
}

// ErrorPayload carries a remote exception.
type ErrorPayload struct {
	Type    string `cbor:"1,keyasint,omitempty"`
	Message string `cbor:"2,keyasint,omitempty"`
}

// FirstUpper returns s with its first rune upper-cased.
func FirstUpper(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
