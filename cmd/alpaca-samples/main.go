// Package main runs the Alpaca API samples.
//
// Usage:
//
//	go run ./cmd/alpaca-samples accounts
//	go run ./cmd/alpaca-samples crypto --symbol ETH/USD --output table
//	go run ./cmd/alpaca-samples credentials import --secret-key $ALPACA_SECRET_KEY
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/betbot/alpacasamples/cmd/alpaca-samples/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
