package proxy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mash-protocol/mash-proxy/pkg/future"
	"github.com/mash-protocol/mash-proxy/pkg/metrics"
	"github.com/mash-protocol/mash-proxy/pkg/qos"
)

// SubscriptionController translates Subscribe and Unsubscribe of one
// attribute into SubscriptionManager calls.
type SubscriptionController struct {
	owner    *Proxy
	qos      *qos.MessagingQos
	attrName string
	attrType string

	sm      SubscriptionManager
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewSubscriptionController creates a controller for the described attribute.
func NewSubscriptionController(owner *Proxy, settings Settings, desc AttributeDescriptor) (*SubscriptionController, error) {
	if owner == nil {
		return nil, fmt.Errorf("%w: owner", ErrMissingDependency)
	}
	if settings.Dependencies.SubscriptionManager == nil {
		return nil, fmt.Errorf("%w: subscription manager", ErrMissingDependency)
	}
	return &SubscriptionController{
		owner:    owner,
		qos:      settings.MessagingQos,
		attrName: desc.Name,
		attrType: desc.Type,
		sm:       settings.Dependencies.SubscriptionManager,
		logger:   loggerOrDiscard(settings.Logger),
		metrics:  settings.Metrics,
	}, nil
}

// Subscribe registers an attribute subscription. The settings are forwarded
// unchanged; the future resolves to the subscription id.
func (c *SubscriptionController) Subscribe(ctx context.Context, s SubscribeSettings) *future.Future[string] {
	c.logger.Debug("subscribing",
		slog.String("attribute", c.attrName),
		slog.String("subscription_id", s.SubscriptionID),
	)

	f := c.sm.RegisterSubscription(ctx, SubscriptionRequest{
		ProxyID:        c.owner.ParticipantID,
		Provider:       c.owner.Provider,
		AttributeName:  c.attrName,
		AttributeType:  c.attrType,
		Qos:            s.SubscriptionQos,
		SubscriptionID: s.SubscriptionID,
		OnReceive:      s.OnReceive,
		OnError:        s.OnError,
		OnSubscribed:   s.OnSubscribed,
	})
	if f == nil {
		f = future.Rejected[string](fmt.Errorf("%w: subscribe %s", ErrNoFuture, c.attrName))
	}
	f.OnDone(func(_ string, err error) {
		c.metrics.ObserveSubscription(c.attrName, metrics.OpSubscribe, err)
	})
	return f
}

// Unsubscribe stops the subscription with s.SubscriptionID. MessagingQos is
// merged from the owner, the attribute settings and the call.
func (c *SubscriptionController) Unsubscribe(ctx context.Context, s UnsubscribeSettings) *future.Future[struct{}] {
	c.logger.Debug("unsubscribing",
		slog.String("attribute", c.attrName),
		slog.String("subscription_id", s.SubscriptionID),
	)

	f := c.sm.UnregisterSubscription(ctx, UnsubscribeParams{
		MessagingQos:   qos.Merge(c.owner.MessagingQos, c.qos, s.MessagingQos),
		SubscriptionID: s.SubscriptionID,
	})
	if f == nil {
		f = future.Rejected[struct{}](fmt.Errorf("%w: unsubscribe %s", ErrNoFuture, c.attrName))
	}
	f.OnDone(func(_ struct{}, err error) {
		c.metrics.ObserveSubscription(c.attrName, metrics.OpUnsubscribe, err)
	})
	return f
}
