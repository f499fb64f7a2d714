package proxy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mash-protocol/mash-proxy/pkg/future"
	"github.com/mash-protocol/mash-proxy/pkg/metrics"
	"github.com/mash-protocol/mash-proxy/pkg/qos"
	"github.com/mash-protocol/mash-proxy/pkg/typing"
	"github.com/mash-protocol/mash-proxy/pkg/wire"
)

// Dispatcher sends the requests of one attribute through the
// RequestReplyManager and converts the first result into the attribute's
// declared type.
type Dispatcher struct {
	owner    *Proxy
	qos      *qos.MessagingQos
	attrType string

	rrm      RequestReplyManager
	registry *typing.Registry
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewDispatcher creates a dispatcher for an attribute of type attrType.
func NewDispatcher(owner *Proxy, settings Settings, attrType string) (*Dispatcher, error) {
	if owner == nil {
		return nil, fmt.Errorf("%w: owner", ErrMissingDependency)
	}
	if settings.Dependencies.RequestReplyManager == nil {
		return nil, fmt.Errorf("%w: request/reply manager", ErrMissingDependency)
	}
	return &Dispatcher{
		owner:    owner,
		qos:      settings.MessagingQos,
		attrType: attrType,
		rrm:      settings.Dependencies.RequestReplyManager,
		registry: registryOrDefault(settings.Dependencies.Registry),
		logger:   loggerOrDiscard(settings.Logger),
		metrics:  settings.Metrics,
	}, nil
}

// Execute sends req to the owner's provider. The future resolves to the
// augmented first result, or nil when the reply carries no results. Errors
// of the request/reply manager are passed through unchanged.
func (d *Dispatcher) Execute(ctx context.Context, req *wire.Request, cs CallSettings) *future.Future[any] {
	params := SendRequestParams{
		To:           d.owner.Provider,
		From:         d.owner.ParticipantID,
		MessagingQos: qos.Merge(d.owner.MessagingQos, d.qos, cs.MessagingQos),
		Request:      req,
	}

	d.logger.Debug("sending request",
		slog.String("method", req.MethodName),
		slog.String("request_id", req.RequestReplyID),
		slog.String("to", params.To.ParticipantID),
		slog.Duration("ttl", params.MessagingQos.TTLOrDefault()),
	)

	start := time.Now()
	sent := d.rrm.SendRequest(ctx, params, d.attrType)
	if sent == nil {
		sent = future.Rejected[[]any](fmt.Errorf("%w: %s", ErrNoFuture, req.MethodName))
	}

	result := future.Then(sent, func(res []any) (any, error) {
		var raw any
		if len(res) > 0 {
			raw = res[0]
		}
		return d.registry.Augment(raw, d.attrType)
	})

	result.OnDone(func(_ any, err error) {
		d.metrics.ObserveRequest(req.MethodName, time.Since(start).Seconds(), err)
		if err != nil {
			d.logger.Debug("request failed",
				slog.String("method", req.MethodName),
				slog.String("request_id", req.RequestReplyID),
				slog.String("error", err.Error()),
			)
		}
	})
	return result
}

func registryOrDefault(r *typing.Registry) *typing.Registry {
	if r == nil {
		return typing.NewRegistry()
	}
	return r
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}
