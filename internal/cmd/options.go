package cmd

import "encoding/json"

// Options represents console arguments.
type Options struct {
	// Denylist is the path to the file with the domains to block.
	Denylist string `long:"denylist" description:"Path to the denylist file. Text after # is a comment, entries are lowercased, empty lines are skipped." default:"denylist.txt"`

	// Upstream is the address of the DNS server the queries for non-blocked
	// domains are relayed to.
	Upstream string `long:"upstream" description:"Address of the upstream DNS server the non-blocked queries are relayed to." default:"1.1.1.1:53"`

	// ListenAddress is the IP address the sinkhole will be listening to.
	ListenAddress string `long:"listen-address" description:"IP address that the DNS sinkhole will be listening to." default:"0.0.0.0"`

	// ListenPort is the UDP port the sinkhole will be listening to.
	ListenPort int `long:"listen-port" description:"UDP port that the DNS sinkhole will be listening to." default:"53"`

	// Timeout is the time to wait for an upstream reply, in milliseconds.
	Timeout int `long:"timeout" description:"Time to wait for an upstream reply, in milliseconds." default:"300"`

	// PassRules is a list of wildcards that define domains that must never
	// be blocked.  Can be specified multiple times.
	PassRules []string `long:"pass-rule" description:"Wildcard that defines domains that must never be blocked. Can be specified multiple times."`

	// MetricsAddress is the optional address the Prometheus metrics handler
	// will be listening to.
	MetricsAddress string `long:"metrics-address" description:"Address the Prometheus metrics handler will be listening to. If not set, metrics are not exposed."`

	// Log settings
	// --

	// Verbose defines whether we should write the DEBUG-level log or not.
	Verbose bool `long:"verbose" description:"Verbose output (optional)" optional:"yes" optional-value:"true"`

	// LogOutput is the optional path to the log file.
	LogOutput string `long:"output" description:"Path to the log file. If not set, write to stdout."`
}

// String implements fmt.Stringer interface for Options.
func (o *Options) String() (s string) {
	b, _ := json.MarshalIndent(o, "", "    ")
	return string(b)
}
