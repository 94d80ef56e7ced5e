package cmd

import (
	"net/netip"
	"time"

	"github.com/AdguardTeam/golibs/log"
	"github.com/ameshkov/dnshole/internal/filter"
	"github.com/ameshkov/dnshole/internal/forward"
	"github.com/ameshkov/dnshole/internal/sinkhole"
)

// toForwardConfig converts command-line arguments to [*forward.Config] or
// panics if the arguments aren't valid.
func toForwardConfig(options *Options) (cfg *forward.Config) {
	if options.Timeout <= 0 {
		log.Fatalf("cmd: timeout must be positive, got %d", options.Timeout)
	}

	return &forward.Config{
		Upstream: options.Upstream,
		Timeout:  time.Duration(options.Timeout) * time.Millisecond,
	}
}

// toSinkholeConfig converts command-line arguments to [*sinkhole.Config] or
// panics if the arguments aren't valid.
func toSinkholeConfig(
	options *Options,
	denylist *filter.Denylist,
	forwarder *forward.Forwarder,
) (cfg *sinkhole.Config) {
	addr, err := netip.ParseAddr(options.ListenAddress)
	if err != nil {
		log.Fatalf("cmd: failed to parse listen-address %s: %v", options.ListenAddress, err)
	}

	if options.ListenPort < 0 || options.ListenPort > 65535 {
		log.Fatalf("cmd: listen-port must be a valid port number, got %d", options.ListenPort)
	}

	return &sinkhole.Config{
		ListenAddr: netip.AddrPortFrom(addr, uint16(options.ListenPort)),
		Denylist:   denylist,
		Forwarder:  forwarder,
		PassRules:  options.PassRules,
	}
}
