// Package forward relays raw DNS queries to the configured upstream
// resolver over UDP and hands the reply back without looking inside it.
package forward

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/AdguardTeam/golibs/log"
)

// maxMsgSize is the largest reply that fits a classic UDP DNS message.
const maxMsgSize = 512

// Relay errors returned by [Forwarder.Exchange].
var (
	// ErrSendFailed means the query could not be sent upstream.
	ErrSendFailed = errors.New("forward: failed to send query upstream")

	// ErrUnreachable means receiving the upstream reply failed.
	ErrUnreachable = errors.New("forward: failed to receive upstream reply")

	// ErrTimeout means the upstream did not reply within the configured
	// timeout.
	ErrTimeout = errors.New("forward: upstream reply timed out")
)

// Forwarder relays raw queries to a single upstream resolver.  Every call
// opens a fresh ephemeral-port socket; UDP is connectionless, so the
// per-call socket cost is small next to the network round trip.
type Forwarder struct {
	upstream *net.UDPAddr
	timeout  time.Duration
}

// New creates a new instance of *Forwarder.
func New(cfg *Config) (f *Forwarder, err error) {
	addr, err := net.ResolveUDPAddr("udp", cfg.Upstream)
	if err != nil {
		return nil, fmt.Errorf("forward: invalid upstream address %s: %w", cfg.Upstream, err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Forwarder{
		upstream: addr,
		timeout:  timeout,
	}, nil
}

// Exchange sends the raw query upstream and waits for a single reply
// datagram, which is returned exactly as received.
func (f *Forwarder) Exchange(query []byte) (reply []byte, err error) {
	conn, err := net.DialUDP("udp", nil, f.upstream)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer log.OnCloserError(conn, log.DEBUG)

	if _, err = conn.Write(query); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	if err = conn.SetReadDeadline(time.Now().Add(f.timeout)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	buf := make([]byte, maxMsgSize)
	n, err := conn.Read(buf)
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return nil, ErrTimeout
		}

		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	return buf[:n], nil
}
