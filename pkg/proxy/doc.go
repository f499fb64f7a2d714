// Package proxy implements the client side of remote attributes.
//
// A generated proxy owns one Attribute facade per remote attribute. The
// facade exposes only the operations its capability string grants:
//
//   - READ: Get, sent as request "get<Name>"
//   - WRITE: Set, validated locally, then sent as request "set<Name>"
//   - NOTIFY: Subscribe and Unsubscribe via the subscription engine
//
// Capabilities are matched by substring, so "NOTIFYREADWRITE", "READONLY"
// and "WRITE_NOTIFY" are all accepted.
//
// # Usage
//
//	owner := &proxy.Proxy{
//	    ParticipantID: "proxy-1",
//	    Provider:      entry,
//	    MessagingQos:  &qos.MessagingQos{TTL: qos.Ptr(30 * time.Second)},
//	}
//	isOn, err := proxy.NewAttribute(owner, proxy.Settings{
//	    Dependencies: proxy.Dependencies{
//	        RequestReplyManager: rrm,
//	        SubscriptionManager: sm,
//	        Registry:            registry,
//	    },
//	}, proxy.NewAttributeDescriptor("isOn", typing.PrimitiveBoolean, "NOTIFYREADWRITE"))
//
//	value, err := isOn.Get(ctx, proxy.CallSettings{}).Wait(ctx)
//
// Callers that need compile-time guarantees use the accessors instead:
//
//	if w, ok := isOn.Writer(); ok {
//	    _, err = w.Set(ctx, proxy.SetSettings{Value: true}).Wait(ctx)
//	}
//
// # QoS
//
// Every request merges MessagingQos from the system default, the owning
// Proxy, the attribute Settings and the call, in that order (see qos.Merge).
// Unsubscribe merges the same layers. Subscribe forwards its SubscriptionQos
// unchanged.
//
// # Errors
//
// All operations return a future. A Set whose value fails member validation
// is rejected with a *ValidationError and nothing is sent. Failures of the
// request/reply or subscription engine are passed through unchanged; this
// package never retries.
package proxy
