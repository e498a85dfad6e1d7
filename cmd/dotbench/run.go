package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/born-ml/dotbench/internal/backend/webgpu"
	"github.com/born-ml/dotbench/internal/bench"
	"github.com/born-ml/dotbench/internal/logger"
)

func runCmd() *cli.Command {
	var (
		size       int64
		iterations int64
		warmup     int64
		seed       int64
		tolerance  float64
		jsonOut    bool
		logLevel   string
		configFile string
	)

	return &cli.Command{
		Name:  "run",
		Usage: "Run the benchmark loop",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "size",
				Aliases:     []string{"n"},
				Usage:       "elements per vector",
				Value:       1 << 20,
				Destination: &size,
			},
			&cli.Int64Flag{
				Name:        "iterations",
				Aliases:     []string{"i"},
				Usage:       "number of iterations (0 = run until interrupted)",
				Value:       0,
				Destination: &iterations,
			},
			&cli.Int64Flag{
				Name:        "warmup",
				Usage:       "number of unreported warmup iterations",
				Value:       1,
				Destination: &warmup,
			},
			&cli.Int64Flag{
				Name:        "seed",
				Usage:       "RNG seed for vector generation (0 = time-based)",
				Destination: &seed,
			},
			&cli.Float64Flag{
				Name:        "tolerance",
				Usage:       "relative error bound for GPU/CPU verification",
				Value:       1e-3,
				Destination: &tolerance,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "emit one JSON object per iteration",
				Destination: &jsonOut,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Value:       "info",
				Destination: &logLevel,
			},
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config file (default ~/.config/dotbench/config.yaml)",
				Destination: &configFile,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load config: %v", err), 1)
			}
			applyRunConfig(cmd, cfg, &size, &iterations, &warmup, &seed, &tolerance, &jsonOut, &logLevel)

			log := logger.Text(os.Stderr, logger.ParseLevel(logLevel))
			ctx = logger.WithContext(ctx, log)

			// The session lives for the whole loop and is released on every
			// exit path, including fatal ones.
			session, err := webgpu.New()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open device: %v", err), 1)
			}
			defer session.Release()

			log.Info("device ready", "name", session.Name())

			runner, err := bench.NewRunner(bench.Config{
				Size:       int(size),
				Iterations: int(iterations),
				Warmup:     int(warmup),
				Seed:       seed,
				Tolerance:  tolerance,
				JSON:       jsonOut,
			}, session, os.Stdout, log)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := runner.Run(ctx); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			return nil
		},
	}
}

func adaptersCmd() *cli.Command {
	return &cli.Command{
		Name:  "adapters",
		Usage: "List available GPU adapters",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			adapters, err := webgpu.ListAdapters()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			for i, info := range adapters {
				fmt.Printf("Adapter %d:\n", i)
				fmt.Printf("  Device:       %s\n", info.Device)
				fmt.Printf("  Vendor:       %s\n", info.Vendor)
				fmt.Printf("  Architecture: %s\n", info.Architecture)
				fmt.Printf("  Description:  %s\n", info.Description)
			}
			return nil
		},
	}
}
