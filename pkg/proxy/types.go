package proxy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mash-protocol/mash-proxy/pkg/future"
	"github.com/mash-protocol/mash-proxy/pkg/metrics"
	"github.com/mash-protocol/mash-proxy/pkg/qos"
	"github.com/mash-protocol/mash-proxy/pkg/typing"
	"github.com/mash-protocol/mash-proxy/pkg/wire"
)

// Proxy errors.
var (
	ErrOperationNotSupported = errors.New("operation not supported by attribute")
	ErrMissingDependency     = errors.New("missing dependency")
	ErrInvalidValue          = errors.New("invalid attribute value")
	ErrNoFuture              = errors.New("collaborator returned no future")
)

// ValidationError rejects a Set before anything is sent.
type ValidationError struct {
	Attribute string
	Err       error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("error setting attribute: %s: %v", e.Attribute, e.Err)
}

// Unwrap exposes both ErrInvalidValue and the underlying validation error.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalidValue, e.Err}
}

// DiscoveryEntry identifies the provider a proxy talks to. Its contents are
// produced by discovery and are opaque to this package.
type DiscoveryEntry struct {
	Domain        string
	InterfaceName string
	ParticipantID string
}

// Proxy is the owner of attribute facades.
type Proxy struct {
	// ParticipantID is the proxy's own participant id (the request origin).
	ParticipantID string

	// Provider is the addressed provider.
	Provider DiscoveryEntry

	// MessagingQos is the owner-level QoS layer. Optional.
	MessagingQos *qos.MessagingQos
}

// RequestReplyManager executes request/reply exchanges.
type RequestReplyManager interface {
	// SendRequest sends params.Request to params.To and returns the
	// positional results of the reply. expectedType is the declared type
	// of the first result.
	SendRequest(ctx context.Context, params SendRequestParams, expectedType string) *future.Future[[]any]
}

// SubscriptionManager registers attribute subscriptions and owns their
// lifecycle.
type SubscriptionManager interface {
	// RegisterSubscription registers req and resolves to the subscription id.
	RegisterSubscription(ctx context.Context, req SubscriptionRequest) *future.Future[string]

	// UnregisterSubscription stops the subscription with params.SubscriptionID.
	UnregisterSubscription(ctx context.Context, params UnsubscribeParams) *future.Future[struct{}]
}

// SendRequestParams is handed to RequestReplyManager.SendRequest.
type SendRequestParams struct {
	To           DiscoveryEntry
	From         string
	MessagingQos qos.MessagingQos
	Request      *wire.Request
}

// SubscriptionRequest is handed to SubscriptionManager.RegisterSubscription.
type SubscriptionRequest struct {
	ProxyID        string
	Provider       DiscoveryEntry
	AttributeName  string
	AttributeType  string
	Qos            *qos.SubscriptionQos
	SubscriptionID string

	OnReceive    func(value any)
	OnError      func(err error)
	OnSubscribed func(subscriptionID string)
}

// UnsubscribeParams is handed to SubscriptionManager.UnregisterSubscription.
type UnsubscribeParams struct {
	MessagingQos   qos.MessagingQos
	SubscriptionID string
}

// Dependencies are the collaborators an attribute delegates to.
type Dependencies struct {
	// RequestReplyManager is required for READ and WRITE.
	RequestReplyManager RequestReplyManager

	// SubscriptionManager is required for NOTIFY.
	SubscriptionManager SubscriptionManager

	// Registry resolves declared types. If nil, only primitive types are
	// known.
	Registry *typing.Registry
}

// Settings configure an attribute.
type Settings struct {
	// MessagingQos is the attribute-level QoS layer. Optional.
	MessagingQos *qos.MessagingQos

	Dependencies Dependencies

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// Metrics is optional.
	Metrics *metrics.Metrics
}

// CallSettings are the per-call options of Get.
type CallSettings struct {
	// MessagingQos is the call-level QoS layer. Optional.
	MessagingQos *qos.MessagingQos
}

// SetSettings are the per-call options of Set.
type SetSettings struct {
	CallSettings

	// Value is the new attribute value.
	Value any
}

// SubscribeSettings are the per-call options of Subscribe.
type SubscribeSettings struct {
	// SubscriptionQos is forwarded unchanged.
	SubscriptionQos *qos.SubscriptionQos

	// SubscriptionID reuses an existing subscription id. Optional.
	SubscriptionID string

	// OnReceive is called with every published value.
	OnReceive func(value any)

	// OnError is called when a publication is missed or fails.
	OnError func(err error)

	// OnSubscribed is called once the subscription request was delivered.
	OnSubscribed func(subscriptionID string)
}

// UnsubscribeSettings are the per-call options of Unsubscribe.
type UnsubscribeSettings struct {
	// MessagingQos is the call-level QoS layer. Optional.
	MessagingQos *qos.MessagingQos

	// SubscriptionID is the id returned by Subscribe.
	SubscriptionID string
}
