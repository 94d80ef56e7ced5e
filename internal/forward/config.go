package forward

import "time"

// DefaultTimeout bounds the wait for an upstream reply when the
// configuration does not say otherwise.  It suits a nearby recursive
// resolver; remote upstreams need a larger value.
const DefaultTimeout = 300 * time.Millisecond

// Config is the upstream relay configuration.
type Config struct {
	// Upstream is the host:port of the resolver that the queries are
	// relayed to.
	Upstream string

	// Timeout bounds the wait for a single reply datagram.  If zero,
	// [DefaultTimeout] is used.
	Timeout time.Duration
}
