// Package main converts RoboCup game logs into CSV tables.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/rcg2csv/internal/platform/cmd"
	"github.com/louisbranch/rcg2csv/internal/platform/config"
	"github.com/louisbranch/rcg2csv/internal/tools/rcg2csv"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("rcg2csv: ")

	fs := flag.NewFlagSet(cmd.ServiceRCG2CSV, flag.ContinueOnError)
	cfg, err := rcg2csv.ParseConfig(fs, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = cmd.RunWithTelemetry(ctx, cmd.ServiceRCG2CSV, func(ctx context.Context) error {
		return rcg2csv.Run(ctx, cfg, os.Stdout, os.Stderr)
	})
	if err != nil {
		config.Exitf("Error: %v", err)
	}
}
