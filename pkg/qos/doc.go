// Package qos defines the messaging quality-of-service options attached to
// every remote call and subscription, and the merge rule that combines them.
//
// QoS is configured in layers: the system default, the proxy that owns an
// attribute, the attribute itself, and finally the individual call. Layers are
// merged left to right and a later layer wins for every option it defines:
//
//	merged := qos.Merge(proxy.MessagingQos, attrQos, &qos.MessagingQos{
//	    TTL: qos.Ptr(5 * time.Second),
//	})
//
// Options a layer leaves unset (nil) never overwrite earlier values.
//
// Subscription QoS is carried verbatim to the subscription engine and is not
// merged by this package.
package qos
