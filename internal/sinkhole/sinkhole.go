// Package sinkhole is responsible for the DNS sinkhole server: a UDP
// listener that answers queries for denylisted domains with a synthesized
// NXDOMAIN response and relays every other query to the upstream resolver,
// writing its answer back to the client verbatim.
package sinkhole

import (
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/AdguardTeam/golibs/log"
	"github.com/ameshkov/dnshole/internal/dnsmsg"
	"github.com/ameshkov/dnshole/internal/filter"
	"github.com/ameshkov/dnshole/internal/forward"
	"github.com/miekg/dns"
	"golang.org/x/time/rate"
)

// maxMsgSize is the largest datagram a classic UDP DNS exchange carries.
const maxMsgSize = 512

// blockedLogRate is how many blocked-domain Info lines may be written per
// second.  Decisions over the limit are still logged at Debug, so a query
// flood cannot drown the log.
const blockedLogRate = 50

// Sinkhole is a struct that manages the DNS sinkhole server.
type Sinkhole struct {
	listenAddr *net.UDPAddr
	conn       *net.UDPConn

	denylist  *filter.Denylist
	forwarder *forward.Forwarder
	passRules []string

	blockedLog *rate.Limiter
}

// type check
var _ io.Closer = (*Sinkhole)(nil)

// New creates a new instance of *Sinkhole.
func New(cfg *Config) (s *Sinkhole, err error) {
	if cfg.Denylist == nil {
		return nil, errors.New("sinkhole: denylist must be set")
	}
	if cfg.Forwarder == nil {
		return nil, errors.New("sinkhole: forwarder must be set")
	}

	return &Sinkhole{
		listenAddr: net.UDPAddrFromAddrPort(cfg.ListenAddr),
		denylist:   cfg.Denylist,
		forwarder:  cfg.Forwarder,
		passRules:  cfg.PassRules,
		blockedLog: rate.NewLimiter(blockedLogRate, blockedLogRate),
	}, nil
}

// Start starts the Sinkhole server.
func (s *Sinkhole) Start() (err error) {
	log.Info("sinkhole: starting")

	s.conn, err = net.ListenUDP("udp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("sinkhole: failed to bind %s: %w", s.listenAddr, err)
	}

	go s.receiveLoop()

	log.Info("sinkhole: started successfully")

	return nil
}

// LocalAddr returns the address the listener socket is bound to, nil before
// Start has been called.  Mostly useful when the configured port is 0.
func (s *Sinkhole) LocalAddr() (addr net.Addr) {
	if s.conn == nil {
		return nil
	}

	return s.conn.LocalAddr()
}

// Close implements the [io.Closer] interface for *Sinkhole.
func (s *Sinkhole) Close() (err error) {
	log.Info("sinkhole: stopping")

	err = s.conn.Close()

	log.Info("sinkhole: stopped")

	return err
}

// receiveLoop receives datagrams from the listener socket and starts
// goroutines handling them.  Requests are independent of each other and may
// finish in any order.
func (s *Sinkhole) receiveLoop() {
	log.Info("sinkhole: listening for DNS queries on %s", s.conn.LocalAddr())

	buf := make([]byte, maxMsgSize)
	for {
		n, addr, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				log.Info("sinkhole: exiting receive loop as the listener has been closed")

				return
			}

			// Nothing sensible can be served once the listener socket is
			// broken.
			log.Fatalf("sinkhole: fatal error receiving queries: %v", err)
		}

		req := make([]byte, n)
		copy(req, buf[:n])

		go func(qc *queryContext) {
			if hErr := s.handleQuery(qc); hErr != nil {
				log.Debug("sinkhole: [%d] dropped query from %s: %v", qc.ID, qc.Addr, hErr)
			}
		}(newQueryContext(req, addr))
	}
}

// handleQuery runs one query through parse, match, synthesize-or-forward
// and reply.  Any error means the query is dropped and the client gets no
// reply at all.
func (s *Sinkhole) handleQuery(qc *queryContext) (err error) {
	domain, qtype, err := dnsmsg.Question(qc.Req)
	if err != nil {
		countQuery(qtype, resultDropped)

		return fmt.Errorf("parsing query: %w", err)
	}

	log.Debug("sinkhole: [%d] received query %s %s from %s", qc.ID, dns.Type(qtype), domain, qc.Addr)

	var resp []byte
	var result string
	if s.blocked(domain) {
		s.logBlocked(qc, domain)
		resp, err = dnsmsg.NegativeResponse(qc.Req)
		result = resultBlocked
	} else {
		resp, err = s.forwarder.Exchange(qc.Req)
		result = resultForwarded
	}
	if err != nil {
		countQuery(qtype, resultDropped)

		return fmt.Errorf("resolving %s: %w", domain, err)
	}

	if _, err = s.conn.WriteToUDP(resp, qc.Addr); err != nil {
		countQuery(qtype, resultDropped)

		return fmt.Errorf("replying to %s: %w", qc.Addr, err)
	}

	countQuery(qtype, result)

	return nil
}

// blocked reports whether domain must be answered negatively.  Pass rules
// win over the denylist.
func (s *Sinkhole) blocked(domain string) (ok bool) {
	if domain == "" {
		return false
	}

	if filter.MatchWildcards(domain, s.passRules) {
		return false
	}

	return s.denylist.Match(domain)
}

// logBlocked reports a blocked domain at the point of decision.
func (s *Sinkhole) logBlocked(qc *queryContext, domain string) {
	if s.blockedLog.Allow() {
		log.Info("sinkhole: [%d] blocked %s", qc.ID, domain)
	} else {
		log.Debug("sinkhole: [%d] blocked %s", qc.ID, domain)
	}
}
