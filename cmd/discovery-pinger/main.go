package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/WangYihang/discovery-pinger/pkg/common"
	"github.com/WangYihang/discovery-pinger/pkg/domain"
	"github.com/WangYihang/discovery-pinger/pkg/interface/cli"
	"github.com/WangYihang/discovery-pinger/pkg/interface/presenter"
)

func main() {
	// Parse command line flags
	flagConfig, err := cli.ParseFlags()
	if err != nil {
		os.Exit(1)
	}

	if flagConfig.Version {
		fmt.Println(common.PV.String())
		return
	}

	level := slog.LevelInfo
	if flagConfig.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	config := flagConfig.ToConfig()
	assembly, err := cli.NewAssembler(config, logger).Assemble(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagConfig.Plan {
		host, err := domain.HostFromURL(config.Discovery.BaseURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		targets, err := assembly.UseCase.Targets(host)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := presenter.NewPlan(host, targets).Write(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if config.Metrics.Listen != "" {
		go func() {
			if err := assembly.Metrics.Serve(ctx, config.Metrics.Listen); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	err = assembly.Scheduler.Start(ctx, func(ctx context.Context) error {
		return assembly.UseCase.Run(ctx, config.Discovery.BaseURL)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Discovery error: %v\n", err)
		os.Exit(1)
	}
}
