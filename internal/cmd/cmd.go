// Package cmd is responsible for the program's command-line interface.
package cmd

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/AdguardTeam/golibs/log"
	"github.com/ameshkov/dnshole/internal/filter"
	"github.com/ameshkov/dnshole/internal/forward"
	"github.com/ameshkov/dnshole/internal/sinkhole"
	goFlags "github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// VersionString is the version that we'll print to the output. See the makefile
// for more details.
var VersionString = "undefined"

// Main is the entry point of the program.
func Main() {
	for _, arg := range os.Args {
		if arg == "--version" {
			fmt.Printf("dnshole version: %s\n", VersionString)
			os.Exit(0)
		}
	}

	options := &Options{}
	parser := goFlags.NewParser(options, goFlags.Default)
	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*goFlags.Error); ok && flagsErr.Type == goFlags.ErrHelp {
			os.Exit(0)
		} else {
			os.Exit(1)
		}
	}

	if options.Verbose {
		log.SetLevel(log.DEBUG)
	}
	if options.LogOutput != "" {
		var file *os.File
		file, err = os.OpenFile(options.LogOutput, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
		if err != nil {
			log.Fatalf("cannot create a log file: %s", err)
		}
		defer log.OnCloserError(file, log.INFO)
		log.SetOutput(file)
	}

	run(options)
}

// run reads the configuration options and starts the sinkhole.
func run(options *Options) {
	log.Info("cmd: run dnshole with the following configuration:\n%s", options)

	denylist := newDenylist(options)

	forwarder, err := forward.New(toForwardConfig(options))
	check(err)

	server, err := sinkhole.New(toSinkholeConfig(options, denylist, forwarder))
	check(err)

	err = server.Start()
	check(err)

	if options.MetricsAddress != "" {
		go serveMetrics(options.MetricsAddress)
	}

	// Subscribe to the OS events.
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)
	<-signalChannel

	log.Info("cmd: stopping dnshole")
	log.OnCloserError(server, log.INFO)
}

// newDenylist loads the denylist file and builds the domain filter from it
// or panics if any error happens.  The filter must be complete before the
// server starts, it is read-only from then on.
func newDenylist(options *Options) (d *filter.Denylist) {
	f, err := os.Open(options.Denylist)
	check(err)
	defer log.OnCloserError(f, log.DEBUG)

	entries, err := filter.ReadEntries(f)
	check(err)

	d, err = filter.NewDenylist(entries)
	check(err)

	log.Info("cmd: loaded %d denylist entries from %s", len(entries), options.Denylist)

	return d
}

// serveMetrics exposes the Prometheus metrics handler.
func serveMetrics(addr string) {
	log.Info("cmd: serving metrics on %s", addr)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	err := http.ListenAndServe(addr, mux)
	if err != nil {
		log.Fatalf("cmd: metrics server failed: %v", err)
	}
}

// check panics if err is not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}
