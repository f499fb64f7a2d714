package proxy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mash-protocol/mash-proxy/pkg/future"
	"github.com/mash-protocol/mash-proxy/pkg/metrics"
	"github.com/mash-protocol/mash-proxy/pkg/typing"
	"github.com/mash-protocol/mash-proxy/pkg/wire"
)

// AttributeDescriptor describes a remote attribute.
type AttributeDescriptor struct {
	// Name is the attribute name, e.g. "isOn".
	Name string

	// Type is the declared type name, e.g. "Boolean" or "Integer[]".
	Type string

	// Capabilities are the operations the attribute exposes.
	Capabilities Capabilities
}

// NewAttributeDescriptor creates a descriptor from a capability string.
func NewAttributeDescriptor(name, typ, capabilities string) AttributeDescriptor {
	return AttributeDescriptor{
		Name:         name,
		Type:         typ,
		Capabilities: ParseCapabilities(capabilities),
	}
}

// Reader is implemented by attributes with READ capability.
type Reader interface {
	Get(ctx context.Context, s CallSettings) *future.Future[any]
}

// Writer is implemented by attributes with WRITE capability.
type Writer interface {
	Set(ctx context.Context, s SetSettings) *future.Future[struct{}]
}

// Notifier is implemented by attributes with NOTIFY capability.
type Notifier interface {
	Subscribe(ctx context.Context, s SubscribeSettings) *future.Future[string]
	Unsubscribe(ctx context.Context, s UnsubscribeSettings) *future.Future[struct{}]
}

// Attribute is the client-side facade of a remote attribute. Only the
// operations granted by its capabilities are attached.
type Attribute struct {
	desc AttributeDescriptor

	reader   Reader
	writer   Writer
	notifier Notifier

	metrics *metrics.Metrics
}

// NewAttribute creates the facade for desc owned by owner. It fails with
// ErrMissingDependency when a granted capability lacks its collaborator.
func NewAttribute(owner *Proxy, settings Settings, desc AttributeDescriptor) (*Attribute, error) {
	a := &Attribute{
		desc:    desc,
		metrics: settings.Metrics,
	}

	caps := desc.Capabilities
	if caps.CanRead() || caps.CanWrite() {
		d, err := NewDispatcher(owner, settings, desc.Type)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", desc.Name, err)
		}
		if caps.CanRead() {
			a.reader = &getter{name: desc.Name, dispatcher: d}
		}
		if caps.CanWrite() {
			a.writer = &setter{
				name:       desc.Name,
				typ:        desc.Type,
				dispatcher: d,
				registry:   d.registry,
				logger:     d.logger,
				metrics:    settings.Metrics,
			}
		}
	}
	if caps.CanNotify() {
		c, err := NewSubscriptionController(owner, settings, desc)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", desc.Name, err)
		}
		a.notifier = c
	}
	return a, nil
}

// Name returns the attribute name.
func (a *Attribute) Name() string { return a.desc.Name }

// Type returns the declared type name.
func (a *Attribute) Type() string { return a.desc.Type }

// Capabilities returns the attached capabilities.
func (a *Attribute) Capabilities() Capabilities { return a.desc.Capabilities }

// Reader returns the get operation if the attribute is readable.
func (a *Attribute) Reader() (Reader, bool) { return a.reader, a.reader != nil }

// Writer returns the set operation if the attribute is writable.
func (a *Attribute) Writer() (Writer, bool) { return a.writer, a.writer != nil }

// Notifier returns the subscription operations if the attribute is
// subscribable.
func (a *Attribute) Notifier() (Notifier, bool) { return a.notifier, a.notifier != nil }

// Get reads the attribute value.
func (a *Attribute) Get(ctx context.Context, s CallSettings) *future.Future[any] {
	if a.reader == nil {
		return future.Rejected[any](a.unsupported("get"))
	}
	return a.reader.Get(ctx, s)
}

// Set writes the attribute value.
func (a *Attribute) Set(ctx context.Context, s SetSettings) *future.Future[struct{}] {
	if a.writer == nil {
		return future.Rejected[struct{}](a.unsupported("set"))
	}
	return a.writer.Set(ctx, s)
}

// Subscribe subscribes to attribute changes.
func (a *Attribute) Subscribe(ctx context.Context, s SubscribeSettings) *future.Future[string] {
	if a.notifier == nil {
		return future.Rejected[string](a.unsupported(metrics.OpSubscribe))
	}
	return a.notifier.Subscribe(ctx, s)
}

// Unsubscribe stops a subscription.
func (a *Attribute) Unsubscribe(ctx context.Context, s UnsubscribeSettings) *future.Future[struct{}] {
	if a.notifier == nil {
		return future.Rejected[struct{}](a.unsupported(metrics.OpUnsubscribe))
	}
	return a.notifier.Unsubscribe(ctx, s)
}

func (a *Attribute) unsupported(op string) error {
	a.metrics.ObserveUnsupported(a.desc.Name, op)
	return fmt.Errorf("%w: %s on %s (%s)", ErrOperationNotSupported, op, a.desc.Name, a.desc.Capabilities)
}

type getter struct {
	name       string
	dispatcher *Dispatcher
}

func (g *getter) Get(ctx context.Context, s CallSettings) *future.Future[any] {
	req := wire.NewRequest("get"+wire.FirstUpper(g.name), nil, nil)
	return g.dispatcher.Execute(ctx, req, s)
}

type setter struct {
	name       string
	typ        string
	dispatcher *Dispatcher
	registry   *typing.Registry
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func (s *setter) Set(ctx context.Context, ss SetSettings) *future.Future[struct{}] {
	if err := s.validate(ss.Value); err != nil {
		s.metrics.ObserveValidationFailure(s.name)
		s.logger.Debug("rejecting invalid value",
			slog.String("attribute", s.name),
			slog.String("error", err.Error()),
		)
		return future.Rejected[struct{}](err)
	}

	req := wire.NewRequest("set"+wire.FirstUpper(s.name), []string{s.typ}, []any{ss.Value})
	return future.Then(s.dispatcher.Execute(ctx, req, ss.CallSettings), func(any) (struct{}, error) {
		return struct{}{}, nil
	})
}

// validate runs the registered member check for the value's type. Nil
// values and values without a registered check are not validated.
func (s *setter) validate(v any) error {
	if typing.IsNil(v) {
		return nil
	}
	if err := s.registry.CheckMembers(v); err != nil {
		return &ValidationError{Attribute: s.name, Err: err}
	}
	return nil
}
