package sinkhole

import (
	"github.com/miekg/dns"
	"github.com/prometheus/client_golang/prometheus"
)

// Terminal request states reported to metrics.
const (
	resultBlocked   = "blocked"
	resultForwarded = "forwarded"
	resultDropped   = "dropped"
)

// queriesTotal counts the handled queries by query type and outcome.
var queriesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dns_sinkhole_queries_total",
		Help: "How many DNS queries were handled, by query type and result.",
	},
	[]string{"qtype", "result"},
)

func init() {
	prometheus.MustRegister(queriesTotal)
}

// countQuery records one query reaching a terminal state.
func countQuery(qtype uint16, result string) {
	queriesTotal.With(prometheus.Labels{
		"qtype":  dns.Type(qtype).String(),
		"result": result,
	}).Inc()
}
