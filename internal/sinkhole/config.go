package sinkhole

import (
	"net/netip"

	"github.com/ameshkov/dnshole/internal/filter"
	"github.com/ameshkov/dnshole/internal/forward"
)

// Config is the sinkhole server configuration.
type Config struct {
	// ListenAddr is the address the UDP listener is bound to.
	ListenAddr netip.AddrPort

	// Denylist is the set of blocked domain suffixes.  It must be fully
	// built before the server starts; the server only reads it.
	Denylist *filter.Denylist

	// Forwarder relays the queries for domains that are not blocked.
	Forwarder *forward.Forwarder

	// PassRules is a list of wildcards for domains that must never be
	// blocked even when the denylist matches them.
	PassRules []string
}
