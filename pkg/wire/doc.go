// Package wire defines the message types exchanged between proxies and
// providers, and their CBOR encoding.
//
// All structures use CBOR (RFC 8949) with integer keys for compactness.
//
// # Message Types
//
// A Message is the routable envelope. Its Type decides how the messaging
// layer treats it:
//   - Request, SubscriptionRequest, BroadcastSubscriptionRequest and
//     MulticastSubscriptionRequest expect an asynchronous answer and carry a
//     reply-to address (see IsReplyAddressable)
//   - OneWay, Reply, SubscriptionReply, Publication, Multicast and
//     SubscriptionStop are never answered
//
// # Payloads
//
// Request and Reply are the RPC payloads carried inside a Message:
//
//	req := wire.NewRequest("getIsOn", nil, nil)
//	data, err := wire.EncodeRequest(req)
package wire
