package qos

import "time"

// SubscriptionQos configures an attribute subscription. It is forwarded to
// the subscription engine as given.
type SubscriptionQos struct {
	// MinInterval is the minimum time between publications.
	MinInterval time.Duration `yaml:"minInterval,omitempty" cbor:"1,keyasint,omitempty"`

	// MaxInterval is the maximum time without a publication (heartbeat).
	MaxInterval time.Duration `yaml:"maxInterval,omitempty" cbor:"2,keyasint,omitempty"`

	// Expiry ends the subscription. Zero means no expiry.
	Expiry time.Time `yaml:"expiry,omitempty" cbor:"3,keyasint,omitempty"`

	// PublicationTTL is the time-to-live of each publication.
	PublicationTTL time.Duration `yaml:"publicationTtl,omitempty" cbor:"4,keyasint,omitempty"`

	// AlertAfterInterval raises a missed-publication error after this
	// period of silence. Zero disables the alert.
	AlertAfterInterval time.Duration `yaml:"alertAfterInterval,omitempty" cbor:"5,keyasint,omitempty"`
}

// Expired reports whether the subscription expiry lies before now.
func (s SubscriptionQos) Expired(now time.Time) bool {
	return !s.Expiry.IsZero() && now.After(s.Expiry)
}
