// Package messaging turns requests into routable messages and hands them to
// a transport.
//
// NewRequestMessage builds the envelope from a merged MessagingQos. Sender
// stamps the reply-to address, encodes the envelope with CBOR and records
// a protocol event for every message it sends:
//
//	resolver := routing.NewReplyResolver(logger)
//	resolver.Configure("mqtt://broker/replies/proxy-1")
//
//	sender := messaging.NewSender(transport, resolver,
//	    messaging.WithLogger(logger),
//	    messaging.WithProtocolLogger(fileLogger))
//
//	msg, err := messaging.NewRequestMessage("proxy-1", "provider-1", q, req)
//	err = sender.Send(ctx, msg)
package messaging
