package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"PMFSimulator/internal/config"
	"PMFSimulator/internal/engine"
	"PMFSimulator/internal/model"
	"PMFSimulator/internal/notifier"
	"PMFSimulator/internal/prng"
	"PMFSimulator/internal/report"
	"PMFSimulator/internal/scheduler"
	"PMFSimulator/internal/store"
)

var (
	cfgPath     string
	numRuns     int
	seedFlag    int64
	runOnce     bool
	outputRaw   bool
	runParallel bool
	shardCount  int
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	rootCmd := &cobra.Command{
		Use:   "pmfsim",
		Short: "Monte Carlo simulator for VC fund performance",
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "configs/config.yaml", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a Monte Carlo batch and print the report",
		RunE:  runBatch,
	}
	runCmd.Flags().IntVar(&numRuns, "n", 0, "number of simulations (0 = use config default)")
	runCmd.Flags().Int64Var(&seedFlag, "seed", 0, "deterministic seed (unset = config run.seed, or random per run if that is unset too)")
	runCmd.Flags().BoolVar(&outputRaw, "json", false, "print full per-run JSON instead of the summary report")
	runCmd.Flags().BoolVar(&runParallel, "parallel", false, "shard the batch across goroutines (reproducible per seed+shard-count, not byte-identical to the sequential driver)")
	runCmd.Flags().IntVar(&shardCount, "shards", 4, "number of shards when --parallel is set")

	onceCmd := &cobra.Command{
		Use:   "once",
		Short: "run a single simulation and print its result",
		RunE:  runOnceCmd,
	}
	onceCmd.Flags().Int64Var(&seedFlag, "seed", 1, "seed for the single run")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "start the cron-scheduled batch runner",
		RunE:  serve,
	}
	serveCmd.Flags().BoolVar(&runOnce, "run-on-start", false, "run one batch immediately before waiting on the schedule")

	rootCmd.AddCommand(runCmd, onceCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	n := cfg.Run.NumSimulations
	if numRuns > 0 {
		n = numRuns
	}

	seed := cfg.Run.Seed
	if cmd.Flags().Changed("seed") {
		seed = &seedFlag
	}

	var results model.MonteCarloResults
	if runParallel {
		results = engine.RunMonteCarloParallel(cfg.Fund, n, seed, shardCount)
	} else {
		results = engine.RunMonteCarlo(cfg.Fund, n, seed)
	}

	if outputRaw {
		return encodeJSON(os.Stdout, results)
	}

	fmt.Print(report.FormatBatch(&results))
	return nil
}

func runOnceCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rng := prng.New(seedFlag)
	result := engine.SimulateOnce(cfg.Fund, rng)

	fmt.Printf("netTvpi: %.3f | grossTvpi: %.3f | irrNet: %.3f | carryPaid: %.0f\n",
		result.NetTvpi, result.GrossTvpi, result.IrrNet, result.CarryPaid)
	fmt.Printf("discoveryOnly: %d | conviction: %d | followOn: %d\n",
		result.DiscoveryOnlyCount, result.ConvictionCount, result.FollowOnCount)
	for _, w := range result.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	log.Println("[INFO] pmfsim starting...")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var rec store.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			rec = store.NewNoopStore()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = store.NewNoopStore()
	}

	var n notifier.Notifier
	if cfg.Notifier.WebhookURL != "" {
		n = notifier.NewWebhookNotifier(cfg.Notifier.WebhookURL)
	} else {
		n = notifier.NewConsoleNotifier()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, cfg.Fund, cfg.Run.NumSimulations, cfg.Run.Seed, rec, n)
	if cfg.Schedule.Enabled {
		if err := sched.RegisterAll(cfg.Schedule.Cron); err != nil {
			return fmt.Errorf("register cron task: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	} else {
		log.Println("[WARN] schedule.enabled is false; no recurring batch registered")
	}

	if runOnce {
		log.Println("[INFO] run-on-start enabled, executing batch now")
		go sched.RunBatchNow()
	}

	log.Println("[INFO] pmfsim is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] pmfsim stopped")
	return nil
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
