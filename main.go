// Package main is responsible for the main func of dnshole.  The actual work
// is done in the cmd package.
package main

import "github.com/ameshkov/dnshole/internal/cmd"

func main() {
	cmd.Main()
}
