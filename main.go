// Package main is the entry point for the kolikctl CLI
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"kolikctl/cmd"
	otelutil "kolikctl/utils/otel"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	os.Exit(run())
}

// run keeps deferred telemetry shutdown ahead of the process exit.
func run() int {
	ctx := context.Background()

	otelCfg := otelutil.ConfigFromEnv()
	otelShutdown, err := otelutil.InitProvider(ctx, otelCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize OpenTelemetry: %v\n", err)
		otelShutdown = func(context.Context) error { return nil }
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to shutdown OpenTelemetry: %v\n", err)
		}
	}()

	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	return 0
}
