package proxy

import "strings"

// Capability tokens recognized in a capability string.
const (
	TokenRead   = "READ"
	TokenWrite  = "WRITE"
	TokenNotify = "NOTIFY"
)

// Capabilities is the set of operations an attribute exposes.
type Capabilities uint8

const (
	// CapRead attaches Get.
	CapRead Capabilities = 1 << iota

	// CapWrite attaches Set.
	CapWrite

	// CapNotify attaches Subscribe and Unsubscribe.
	CapNotify

	// Common combinations.

	// CapNotifyReadOnly is what "NOTIFYREADONLY" parses to.
	CapNotifyReadOnly = CapRead | CapNotify

	// CapNotifyReadWrite is what "NOTIFYREADWRITE" parses to.
	CapNotifyReadWrite = CapRead | CapWrite | CapNotify
)

// ParseCapabilities derives capabilities from a capability string such as
// "NOTIFYREADWRITE". Each token is matched as a substring independent of
// position; a string containing no token yields no capabilities.
func ParseCapabilities(s string) Capabilities {
	var c Capabilities
	if strings.Contains(s, TokenRead) {
		c |= CapRead
	}
	if strings.Contains(s, TokenWrite) {
		c |= CapWrite
	}
	if strings.Contains(s, TokenNotify) {
		c |= CapNotify
	}
	return c
}

// CanRead returns true if reading is allowed.
func (c Capabilities) CanRead() bool { return c&CapRead != 0 }

// CanWrite returns true if writing is allowed.
func (c Capabilities) CanWrite() bool { return c&CapWrite != 0 }

// CanNotify returns true if subscribing is allowed.
func (c Capabilities) CanNotify() bool { return c&CapNotify != 0 }

// String returns the capabilities as a string.
func (c Capabilities) String() string {
	var s string
	if c.CanRead() {
		s += "R"
	}
	if c.CanWrite() {
		s += "W"
	}
	if c.CanNotify() {
		s += "N"
	}
	if s == "" {
		return "-"
	}
	return s
}
