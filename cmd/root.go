// Package cmd provides the command-line interface for the cache
// hierarchy simulator.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/filberthamijoyo/cachesim/internal/config"
	"github.com/filberthamijoyo/cachesim/internal/hierarchy"
	"github.com/filberthamijoyo/cachesim/internal/prefetch"
	"github.com/filberthamijoyo/cachesim/internal/stats"
	"github.com/filberthamijoyo/cachesim/internal/telemetry"
	"github.com/filberthamijoyo/cachesim/internal/trace"
)

var (
	configPath    string
	dumpBlocks    bool
	fullBlockFill bool
	recordPath    string
	httpAddr      string
	enablePprof   bool
	noOpen        bool
	quiet         bool
)

var rootCmd = &cobra.Command{
	Use:   "cachesim <trace-file>",
	Short: "Trace-driven simulator of a multi-level cache hierarchy.",
	Long: `cachesim replays a trace of read and write operations against a ` +
		`three-level set-associative cache hierarchy with an adaptive ` +
		`stride prefetcher, and reports per-level hit/miss/cycle statistics.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(_ *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "",
		"path to a .env file overriding the default cache policies")
	rootCmd.Flags().BoolVar(&dumpBlocks, "dump-blocks", false,
		"print per-block state after the statistics block")
	rootCmd.Flags().BoolVar(&fullBlockFill, "full-block-fill", false,
		"transfer whole blocks on a miss instead of the default single byte")
	rootCmd.Flags().StringVar(&recordPath, "record", "",
		"append this run's statistics to the SQLite database at the given path")
	rootCmd.Flags().StringVar(&httpAddr, "http", "",
		"serve the statistics over HTTP at the given address after the run completes")
	rootCmd.Flags().BoolVar(&enablePprof, "pprof", false,
		"expose /debug/pprof/ on the statistics server")
	rootCmd.Flags().BoolVar(&noOpen, "no-open", false,
		"do not open the statistics server in a browser")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false,
		"suppress the run telemetry line on stderr")
}

// Execute runs the root command. Structural invariant violations inside
// the cache model panic; they are turned into a stderr diagnostic and a
// nonzero exit here rather than a stack trace, since to the user they
// are fatal model errors, not a bug report.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, r)
			telemetry.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		telemetry.Exit(1)
	}

	telemetry.Exit(0)
}

func run(tracePath string) error {
	runID := telemetry.NewRunID()
	start := time.Now()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if fullBlockFill {
		for i := range cfg.Levels {
			cfg.Levels[i].Policy.FullBlockFill = true
		}
	}

	chain, err := hierarchy.Build(cfg)
	if err != nil {
		return err
	}

	if err := replayTrace(tracePath, chain); err != nil {
		return err
	}

	if err := stats.WriteReport(os.Stdout, chain.Top); err != nil {
		return err
	}

	if dumpBlocks {
		if err := stats.WriteBlockDump(os.Stdout, chain.Top); err != nil {
			return err
		}
	}

	if !quiet {
		logTelemetry(runID, start)
	}

	if recordPath != "" {
		if err := recordRun(runID, tracePath, chain); err != nil {
			return err
		}
	}

	if httpAddr != "" {
		if err := serveStats(chain); err != nil {
			return err
		}
	}

	return nil
}

// replayTrace streams the trace through the hierarchy and the prefetch
// controller: ensure the backing page exists, apply the demand access
// to the top level, then let the controller observe the address and
// possibly issue speculative reads.
func replayTrace(path string, chain *hierarchy.Chain) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open trace %q: %w", path, err)
	}
	defer file.Close()

	reader := trace.NewReader(file)
	controller := prefetch.NewController(chain.Top, chain.Memory)

	for {
		rec, err := reader.Next()
		if errors.Is(err, trace.ErrDone) {
			return nil
		}

		if err != nil {
			return err
		}

		if !chain.Memory.IsPageExist(rec.Addr) {
			chain.Memory.AddPage(rec.Addr)
		}

		switch rec.Op {
		case trace.Read:
			chain.Top.GetByte(rec.Addr, nil, false)
		case trace.Write:
			// The trace format carries no data values; every write
			// stores a zero byte.
			chain.Top.SetByte(rec.Addr, 0, nil)
		}

		controller.Observe(rec.Addr)
	}
}

func logTelemetry(runID string, start time.Time) {
	usage, err := telemetry.CurrentUsage()
	if err != nil {
		// Best effort: a restricted container may not expose process
		// stats, and that must not fail the run.
		usage = telemetry.HostUsage{}
	}

	fmt.Fprintf(os.Stderr, "run %s finished in %v, rss %d bytes\n",
		runID, time.Since(start).Round(time.Millisecond), usage.RSSBytes)
}

func recordRun(runID, tracePath string, chain *hierarchy.Chain) error {
	recorder, err := stats.OpenRecorder(recordPath)
	if err != nil {
		return err
	}

	telemetry.RegisterCleanup(func() { recorder.Close() })

	return recorder.Record(runID, filepath.Base(tracePath), chain.Top)
}

// serveStats exposes the finished run's statistics over HTTP and blocks
// until the process is interrupted.
func serveStats(chain *hierarchy.Chain) error {
	server := stats.NewServer(chain.Top, enablePprof)

	url, err := server.Start(httpAddr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Serving statistics at %s/stats\n", url)

	if !noOpen {
		if err := browser.OpenURL(url + "/stats"); err != nil {
			fmt.Fprintf(os.Stderr, "Unable to open browser: %v\n", err)
		}
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt

	return nil
}
