package sinkhole

import (
	"net"
	"sync/atomic"
)

var lastID uint64

// queryContext carries a single received datagram through its handling
// pipeline.
type queryContext struct {
	// Addr is the client address the reply is written back to.
	Addr *net.UDPAddr

	// Req holds the raw query bytes.  They are owned exclusively by this
	// query's goroutine.
	Req []byte

	// ID is a unique query ID used to correlate log lines.
	ID uint64
}

// newQueryContext creates a new instance of *queryContext.
func newQueryContext(req []byte, addr *net.UDPAddr) (qc *queryContext) {
	return &queryContext{
		ID:   atomic.AddUint64(&lastID, 1),
		Addr: addr,
		Req:  req,
	}
}
