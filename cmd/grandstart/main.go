// grandstart generates Grandstream HT8xx analog telephone adapter
// configuration files from a spreadsheet of subscriber lines.
//
// Each subscriber's lines (optionally split by location) are sized onto the
// fewest HT818/HT814/HT812 adapters, and one configuration per adapter is
// rendered from an XML template.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default locations of the optional configuration and env files.
const (
	defaultConfigPath = "configs/grandstart.yaml"
	defaultEnvFile    = ".env"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
