package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/screa/pr000xy-miner/internal/config"
	logpkg "github.com/screa/pr000xy-miner/internal/logger"
	minerpkg "github.com/screa/pr000xy-miner/pkg/miner"
	"github.com/screa/pr000xy-miner/pkg/sink"
	"github.com/screa/pr000xy-miner/pkg/types"
	"github.com/spf13/cobra"
)

// Process exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitTimeout     = 2
	exitInterrupted = 130
)

// exitError carries a process exit code out of a cobra command. A nil err
// exits without printing anything.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

var (
	cfg    = config.NewConfig()
	logger *logpkg.Logger
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		code := exitFailure
		var ee *exitError
		if errors.As(err, &ee) {
			code = ee.code
		}
		if ee == nil || ee.err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(code)
	}
}

func newRootCmd() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "pr000xy-miner",
		Short: "CREATE2 salt miner for Pr000xy proxies",
		Long: `Searches for CREATE2 salts whose proxy address satisfies a nibble pattern.
Candidates with enough zero bytes to earn a Pr000xy reward are appended to
the results file as they are found.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runMiner,
	}

	flags := rootCmd.Flags()
	flags.IntVarP(&cfg.Workers, "workers", "w", runtime.NumCPU(), "Number of search lanes")
	flags.StringVarP(&cfg.Factory, "factory", "f", config.DefaultFactory, "Pr000xy factory address")
	flags.StringVarP(&cfg.Submitter, "submitter", "a", "", "Address placed in the first 20 bytes of every salt (required)")
	flags.StringVarP(&cfg.Bytecode, "bytecode", "B", "", "Proxy init code (hex)")
	flags.StringVarP(&cfg.BytecodeFile, "bytecode-file", "F", "", "File containing proxy init code (hex)")
	flags.StringVarP(&cfg.InitCodeHash, "init-hash", "H", "", "Keccak-256 of the proxy init code (default: Pr000xy proxy)")
	flags.StringVarP(&cfg.Pattern, "pattern", "p", "", "40 character predicate pattern (required)")
	flags.StringVarP(&cfg.Target, "target", "t", config.DefaultTarget, "Target address the pattern compares against")
	flags.StringVarP(&cfg.ResultsFile, "results", "o", config.DefaultResultsFile, "File rewarding candidates are appended to")
	flags.StringVarP(&cfg.LogFile, "log-file", "l", "", "Log file for progress tracking (default: stdout)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	flags.IntVarP(&cfg.LogInterval, "log-interval", "i", 5, "Progress logging interval in seconds when verbose")
	flags.IntVar(&cfg.ReportLane, "report-lane", 0, "Lane that reports the hash rate, -1 to disable")
	flags.Uint64Var(&cfg.ReportEvery, "report-every", config.DefaultReportEvery, "Nonces between hash rate reports")
	flags.DurationVar(&cfg.Timeout, "timeout", 0, "Give up after this long (0 runs until a match)")
	flags.StringVarP(&cfg.ConfigFile, "config", "c", "", "YAML campaign file; explicit flags take precedence")

	rootCmd.AddCommand(newVerifyCmd(), newScoreCmd())
	return rootCmd
}

func runMiner(cmd *cobra.Command, args []string) error {
	if cfg.ConfigFile != "" {
		f, err := config.LoadFile(cfg.ConfigFile)
		if err != nil {
			return err
		}
		cfg.Merge(f, cmd.Flags())
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Setup logging
	setupLogging()
	defer logger.Close()

	logger.Printf("Starting Pr000xy miner with %d workers...", cfg.Workers)
	logger.Printf("Target: %s", cfg.GetTargetDescription())
	logger.Printf("Factory address: %s", cfg.Factory)
	logger.Printf("Submitter: %s", cfg.Submitter)
	if cfg.BytecodeFile != "" {
		logger.Printf("Bytecode file: %s", cfg.BytecodeFile)
	} else if cfg.Bytecode != "" {
		logger.Printf("Bytecode: %s...", cfg.Bytecode[:min(20, len(cfg.Bytecode))])
	}
	logger.Printf("Results file: %s", cfg.ResultsFile)

	results, err := sink.Open(cfg.ResultsFile, logger, sink.DefaultOptions())
	if err != nil {
		return err
	}
	defer results.Close()

	miner, err := minerpkg.NewMiner(cfg, logger, results)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	// Set up signal handling for Ctrl+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	type outcome struct {
		result *types.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := miner.Mine(ctx)
		done <- outcome{result, err}
	}()

	// Wait for either completion or signal
	var out outcome
	interrupted := false
	select {
	case out = <-done:
	case <-sigChan:
		logger.Println("\nReceived interrupt signal (Ctrl+C). Stopping miners...")
		miner.Stop()
		out = <-done
		interrupted = true
	}

	switch {
	case out.err == nil:
		reportResult(out.result)
		return nil
	case interrupted && errors.Is(out.err, minerpkg.ErrStopped):
		reportBest(miner)
		return &exitError{code: exitInterrupted}
	case errors.Is(out.err, context.DeadlineExceeded):
		logger.Printf("No match within %v.", cfg.Timeout)
		reportBest(miner)
		return &exitError{code: exitTimeout}
	}
	return out.err
}

func reportResult(result *types.Result) {
	logger.Printf("Salt: %s", result.SaltHex())
	logger.Printf("Address: %s", result.Address.Hex())
	logger.Printf("Score: %s", result.Score)
	logger.Printf("Lane: %d", result.Lane)
	logger.Printf("Attempts: %d", result.Attempts)
	logger.Printf("Duration: %v", result.Duration)

	// Calculate rate safely
	rate := 0.0
	if result.Duration.Seconds() > 0 {
		rate = float64(result.Attempts) / result.Duration.Seconds()
	}
	logger.Printf("Rate: %.2f hashes/sec", rate)
}

func reportBest(miner *minerpkg.Miner) {
	logger.Printf("Attempts: %d", miner.Attempts())
	if best := miner.GetBestHit(); best != nil {
		logger.Printf("Best rewarding candidate so far: %s", best)
	} else {
		logger.Println("No rewarding candidates found.")
	}
}

func setupLogging() {
	if cfg.LogFile != "" {
		logger = logpkg.NewFile(cfg.LogFile)
	} else {
		// Log to stdout
		logger = logpkg.New()
		logger.SetFlags(logpkg.LstdFlags)
	}
	logger.SetVerbose(cfg.Verbose)
}
