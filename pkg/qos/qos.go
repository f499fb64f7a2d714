package qos

import (
	"errors"
	"fmt"
	"maps"
	"time"
)

// DefaultTTL is the round-trip time-to-live applied when no layer defines one.
const DefaultTTL = 60 * time.Second

// QoS errors.
var (
	ErrInvalidTTL    = errors.New("invalid ttl")
	ErrInvalidHeader = errors.New("invalid custom header")
	ErrInvalidEffort = errors.New("invalid effort")
)

// Effort selects the delivery guarantee for a message.
type Effort uint8

const (
	// EffortNormal delivers with the transport's normal guarantees.
	EffortNormal Effort = iota

	// EffortBestEffort allows the transport to drop the message.
	EffortBestEffort
)

// String returns the effort name.
func (e Effort) String() string {
	switch e {
	case EffortNormal:
		return "NORMAL"
	case EffortBestEffort:
		return "BEST_EFFORT"
	default:
		return "UNKNOWN"
	}
}

// ParseEffort parses an effort name as produced by String.
func ParseEffort(s string) (Effort, error) {
	switch s {
	case "NORMAL":
		return EffortNormal, nil
	case "BEST_EFFORT":
		return EffortBestEffort, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidEffort, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e Effort) MarshalText() ([]byte, error) {
	if e > EffortBestEffort {
		return nil, fmt.Errorf("%w: %d", ErrInvalidEffort, e)
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Effort) UnmarshalText(text []byte) error {
	v, err := ParseEffort(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// MessagingQos holds the QoS options of a single layer.
// A nil field means the layer does not define that option.
type MessagingQos struct {
	// TTL is the round-trip timeout of a request.
	TTL *time.Duration `yaml:"ttl,omitempty" cbor:"1,keyasint,omitempty"`

	// Effort is the delivery guarantee.
	Effort *Effort `yaml:"effort,omitempty" cbor:"2,keyasint,omitempty"`

	// Encrypt requests payload encryption by the transport.
	Encrypt *bool `yaml:"encrypt,omitempty" cbor:"3,keyasint,omitempty"`

	// Compress requests payload compression by the transport.
	Compress *bool `yaml:"compress,omitempty" cbor:"4,keyasint,omitempty"`

	// CustomHeaders are forwarded with the message. A defined map replaces
	// the headers of earlier layers as a whole.
	CustomHeaders map[string]string `yaml:"customHeaders,omitempty" cbor:"5,keyasint,omitempty"`
}

// Default returns the system default QoS with every option defined.
func Default() MessagingQos {
	return MessagingQos{
		TTL:      Ptr(DefaultTTL),
		Effort:   Ptr(EffortNormal),
		Encrypt:  Ptr(false),
		Compress: Ptr(false),
	}
}

// Merge combines layers ordered from least to most specific on top of
// Default. For every option the last layer defining it wins; nil layers and
// undefined options are skipped. The result shares no memory with the inputs.
func Merge(layers ...*MessagingQos) MessagingQos {
	out := Default()
	for _, l := range layers {
		if l == nil {
			continue
		}
		if l.TTL != nil {
			out.TTL = Ptr(*l.TTL)
		}
		if l.Effort != nil {
			out.Effort = Ptr(*l.Effort)
		}
		if l.Encrypt != nil {
			out.Encrypt = Ptr(*l.Encrypt)
		}
		if l.Compress != nil {
			out.Compress = Ptr(*l.Compress)
		}
		if l.CustomHeaders != nil {
			out.CustomHeaders = maps.Clone(l.CustomHeaders)
		}
	}
	return out
}

// Validate checks the options this layer defines.
func (q *MessagingQos) Validate() error {
	if q == nil {
		return nil
	}
	if q.TTL != nil && *q.TTL <= 0 {
		return fmt.Errorf("%w: %v must be positive", ErrInvalidTTL, *q.TTL)
	}
	if q.Effort != nil && *q.Effort > EffortBestEffort {
		return fmt.Errorf("%w: %d", ErrInvalidEffort, *q.Effort)
	}
	for k := range q.CustomHeaders {
		if k == "" {
			return fmt.Errorf("%w: empty key", ErrInvalidHeader)
		}
	}
	return nil
}

// TTLOrDefault returns the defined TTL or DefaultTTL.
func (q MessagingQos) TTLOrDefault() time.Duration {
	if q.TTL == nil {
		return DefaultTTL
	}
	return *q.TTL
}

// EffortOrDefault returns the defined effort or EffortNormal.
func (q MessagingQos) EffortOrDefault() Effort {
	if q.Effort == nil {
		return EffortNormal
	}
	return *q.Effort
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
