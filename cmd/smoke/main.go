package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/mergington/activities/internal/smoke"
	"github.com/mergington/activities/pkg/logger"
)

// Overall deadline for a complete smoke run.
const runTimeout = 2 * time.Minute

func main() {
	var (
		baseURL  = flag.String("url", smoke.DefaultBaseURL, "Base URL of the service")
		activity = flag.String("activity", smoke.DefaultActivity, "Activity to use for the probe signup")
		timeout  = flag.Duration("timeout", smoke.DefaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	runner := smoke.NewRunner(smoke.Config{
		BaseURL:  *baseURL,
		Activity: *activity,
		Timeout:  *timeout,
	})

	if err := runner.Run(ctx); err != nil {
		os.Stderr.WriteString("Smoke check failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
