// Package client assembles the runtime shared by all proxies of a process:
// logging, protocol capture, metrics, the reply address and the message
// sender.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mash-protocol/mash-proxy/pkg/config"
	"github.com/mash-protocol/mash-proxy/pkg/log"
	"github.com/mash-protocol/mash-proxy/pkg/messaging"
	"github.com/mash-protocol/mash-proxy/pkg/metrics"
	"github.com/mash-protocol/mash-proxy/pkg/proxy"
	"github.com/mash-protocol/mash-proxy/pkg/qos"
	"github.com/mash-protocol/mash-proxy/pkg/routing"
	"github.com/mash-protocol/mash-proxy/pkg/typing"
)

// ErrMissingTransport is returned by New without a transport.
var ErrMissingTransport = errors.New("missing transport")

// Option configures a Runtime.
type Option func(*options)

type options struct {
	logWriter  io.Writer
	registerer prometheus.Registerer
	registry   *typing.Registry
}

// WithLogWriter sets the destination of operational logs (default stderr).
func WithLogWriter(w io.Writer) Option {
	return func(o *options) { o.logWriter = w }
}

// WithRegisterer registers the metrics with reg. Without it metrics are
// collected but not exported.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithTypeRegistry shares an existing type registry.
func WithTypeRegistry(r *typing.Registry) Option {
	return func(o *options) { o.registry = r }
}

// Runtime holds the per-process messaging infrastructure.
type Runtime struct {
	config   config.Config
	logger   *slog.Logger
	metrics  *metrics.Metrics
	registry *typing.Registry
	resolver *routing.ReplyResolver
	sender   *messaging.Sender
	protocol *log.MultiLogger
}

// New builds a runtime from cfg. The reply-to address from cfg is applied
// when set; otherwise it must be configured with SetReplyAddress before the
// first request.
func New(cfg config.Config, transport messaging.Transport, opts ...Option) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, ErrMissingTransport
	}

	o := options{logWriter: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Runtime{
		config:   cfg,
		logger:   cfg.NewLogger(o.logWriter),
		metrics:  metrics.New(cfg.MetricsNamespace),
		registry: o.registry,
	}
	if r.registry == nil {
		r.registry = typing.NewRegistry()
	}
	if o.registerer != nil {
		if err := r.metrics.Register(o.registerer); err != nil {
			return nil, err
		}
	}

	var protocolLoggers []log.Logger
	if cfg.ProtocolLogPath != "" {
		fl, err := log.NewFileLogger(cfg.ProtocolLogPath)
		if err != nil {
			return nil, fmt.Errorf("open protocol log: %w", err)
		}
		protocolLoggers = append(protocolLoggers, fl)
	}
	if r.logger.Enabled(context.Background(), slog.LevelDebug) {
		protocolLoggers = append(protocolLoggers, log.NewSlogAdapter(r.logger))
	}
	r.protocol = log.NewMultiLogger(protocolLoggers...)

	r.resolver = routing.NewReplyResolver(r.logger)
	if cfg.ReplyTo != "" {
		r.resolver.Configure(routing.Address(cfg.ReplyTo))
	}

	r.sender = messaging.NewSender(transport, r.resolver,
		messaging.WithLogger(r.logger),
		messaging.WithProtocolLogger(r.protocol))

	r.logger.Info("proxy runtime ready",
		"participant", cfg.ParticipantID,
		"replyTo", cfg.ReplyTo,
		"protocolLog", cfg.ProtocolLogPath)
	return r, nil
}

// Logger returns the operational logger.
func (r *Runtime) Logger() *slog.Logger { return r.logger }

// Metrics returns the dispatch metrics.
func (r *Runtime) Metrics() *metrics.Metrics { return r.metrics }

// Registry returns the type registry.
func (r *Runtime) Registry() *typing.Registry { return r.registry }

// Sender returns the message sender.
func (r *Runtime) Sender() *messaging.Sender { return r.sender }

// Resolver returns the reply address resolver.
func (r *Runtime) Resolver() *routing.ReplyResolver { return r.resolver }

// SetReplyAddress replaces the reply-to address used for outgoing requests.
func (r *Runtime) SetReplyAddress(addr string) {
	r.resolver.Configure(routing.Address(addr))
}

// NewProxy creates a proxy owner for provider. The configured process QoS
// is merged below q.
func (r *Runtime) NewProxy(provider proxy.DiscoveryEntry, q *qos.MessagingQos) *proxy.Proxy {
	merged := qos.Merge(&r.config.MessagingQos, q)
	return &proxy.Proxy{
		ParticipantID: r.config.ParticipantID,
		Provider:      provider,
		MessagingQos:  &merged,
	}
}

// Settings returns attribute settings bound to this runtime's logger,
// metrics and type registry. A registry in deps takes precedence.
func (r *Runtime) Settings(deps proxy.Dependencies) proxy.Settings {
	if deps.Registry == nil {
		deps.Registry = r.registry
	}
	return proxy.Settings{
		Dependencies: deps,
		Logger:       r.logger,
		Metrics:      r.metrics,
	}
}

// Close flushes and closes the protocol log.
func (r *Runtime) Close() error {
	return r.protocol.Close()
}
