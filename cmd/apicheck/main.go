package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"houseprice/internal/client"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:5000", "Base URL of the prediction service")
		timeout = flag.Duration("timeout", 5*time.Second, "Per-request timeout")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx, cancel := context.WithTimeout(context.Background(), 10*(*timeout))
	defer cancel()

	failed := 0
	for _, r := range client.RunChecks(ctx, client.New(*baseURL, *timeout)) {
		switch {
		case r.Skipped:
			fmt.Printf("SKIP  %s\n", r.Name)
		case r.Passed:
			fmt.Printf("PASS  %s\n", r.Name)
		default:
			failed++
			fmt.Printf("FAIL  %s: %s\n", r.Name, r.Detail)
		}
	}

	if failed > 0 {
		log.Error().Int("failed", failed).Str("url", *baseURL).Msg("api check failed")
		os.Exit(1)
	}
	log.Info().Str("url", *baseURL).Msg("api check passed")
}
