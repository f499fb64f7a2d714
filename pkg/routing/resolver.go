// Package routing stamps the reply-to address onto outbound messages so that
// a remote peer knows where to send its answer.
package routing

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mash-protocol/mash-proxy/pkg/wire"
)

// ErrReplyAddressNotConfigured is returned by Apply for a reply-addressable
// message when no address has been configured. It indicates a setup error
// and must not be retried.
var ErrReplyAddressNotConfigured = errors.New("reply-to address not configured")

// Address is a serialized transport address. It is owned by the transport
// layer and copied into messages without interpretation.
type Address string

// ReplyResolver holds the local reply-to address.
//
// Configure must happen before the first Apply. The address may be replaced
// later; messages already stamped keep the address they received.
type ReplyResolver struct {
	mu      sync.RWMutex
	address Address
	logger  *slog.Logger
}

// NewReplyResolver creates an unconfigured resolver. logger may be nil.
func NewReplyResolver(logger *slog.Logger) *ReplyResolver {
	return &ReplyResolver{logger: logger}
}

// Configure sets the reply-to address. The last call wins.
func (r *ReplyResolver) Configure(addr Address) {
	r.mu.Lock()
	prev := r.address
	r.address = addr
	r.mu.Unlock()

	if r.logger != nil && prev != "" && prev != addr {
		r.logger.Debug("reply-to address replaced", "old", string(prev), "new", string(addr))
	}
}

// Address returns the configured address and whether one is set.
func (r *ReplyResolver) Address() (Address, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.address, r.address != ""
}

// Apply stamps the configured address onto msg.
//
// A message that already carries a reply-to address and a message whose type
// is not reply-addressable are left untouched. A reply-addressable message
// without an address fails with ErrReplyAddressNotConfigured when no address
// is configured.
func (r *ReplyResolver) Apply(msg *wire.Message) error {
	if msg.HasReplyTo() || !msg.Type.IsReplyAddressable() {
		return nil
	}

	addr, ok := r.Address()
	if !ok {
		return fmt.Errorf("%w: message %s of type %s", ErrReplyAddressNotConfigured, msg.ID, msg.Type)
	}
	msg.ReplyTo = string(addr)
	return nil
}
