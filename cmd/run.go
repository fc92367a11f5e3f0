package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hookchain/hook-engine/internal/config"
	"hookchain/hook-engine/internal/discovery"
	"hookchain/hook-engine/internal/invoker"
	"hookchain/hook-engine/internal/metrics"
	"hookchain/hook-engine/internal/runner"
	"hookchain/hook-engine/pkg/logger"
	"hookchain/hook-engine/pkg/scheduler"
	"hookchain/hook-engine/pkg/types"
)

var (
	runParams       []string
	runNoInheritEnv bool
	runWarnAfter    time.Duration
	runKillAfter    time.Duration
	runSuffix       string
	runStats        bool
)

// runCmd is the run subcommand.
var runCmd = &cobra.Command{
	Use:   "run <hooks-dir>",
	Short: "Run the hooks found in a directory, in lexicographic order",
	Long: `Scan a directory for executable hook files, sort them
lexicographically, and run them as one chain. The chain stops at the first
hook whose exit code classifies as an error or interrupt; warning codes are
logged and the chain continues.

Each hook receives the ambient environment (unless --no-inherit-env is given)
merged with the --param pairs; parameters win on name collisions.`,
	Example: `  # Run all executable files under /etc/myapp/hooks.d
  hook-engine run /etc/myapp/hooks.d

  # Pass hook parameters, overriding inherited variables on collision
  hook-engine run --param RESOURCE=db1 --param PHASE=pre /etc/myapp/hooks.d

  # Bound the whole chain to 90 seconds
  hook-engine run --kill-after 90s /etc/myapp/hooks.d`,
	Args: cobra.ExactArgs(1),
	RunE: runHooks,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayVarP(&runParams, "param", "p", nil, "hook parameter NAME=value (repeatable)")
	runCmd.Flags().BoolVar(&runNoInheritEnv, "no-inherit-env", false, "do not pass the current environment to hooks")
	runCmd.Flags().DurationVar(&runWarnAfter, "warn-after", 0, "log a warning when the chain runs longer than this")
	runCmd.Flags().DurationVar(&runKillAfter, "kill-after", 0, "abandon the chain after this duration")
	runCmd.Flags().StringVar(&runSuffix, "suffix", "", "only run hooks whose file name ends with this suffix")
	runCmd.Flags().BoolVar(&runStats, "stats", false, "print hook duration statistics after the chain")
}

func runHooks(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.NewLoader().WithConfigPath(cfgFile).Load()
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)

	logger.Init(&logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		FilePath:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
	})
	defer logger.Sync()

	hooks, err := discovery.Scan(args[0], discovery.Options{Suffix: cfg.Discovery.Suffix})
	if err != nil {
		return err
	}

	params, err := parseParams(runParams)
	if err != nil {
		return err
	}

	systemEnv := types.EnvPairSet{}
	if !runNoInheritEnv {
		systemEnv = types.ParseEnviron(os.Environ())
	}

	pool, err := scheduler.NewPool(cfg.Pool.Size)
	if err != nil {
		return fmt.Errorf("creating worker pool: %w", err)
	}

	recorder := metrics.NewRecorder()
	run := runner.New(invoker.NewExecInvoker(pool, logger.L()), pool, logger.L()).
		WithRecorder(recorder)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcome := run.RunSync(ctx, hooks, params, systemEnv, runner.Options{
		WarnAfter: cfg.Runner.WarnAfter,
		KillAfter: cfg.Runner.KillAfter,
	})

	printOutcome(cmd, hooks, outcome)
	if runStats {
		printStats(cmd, recorder.Snapshot())
	}

	pool.Release()
	logger.Sync()
	if code := exitCodeFor(outcome); code != 0 {
		os.Exit(code)
	}
	return nil
}

// applyFlagOverrides lets explicit flags win over file and env configuration.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if debug {
		cfg.Logging.Level = "debug"
	}
	if quiet {
		cfg.Logging.Level = "error"
	}
	if cmd.Flags().Changed("warn-after") {
		cfg.Runner.WarnAfter = runWarnAfter
	}
	if cmd.Flags().Changed("kill-after") {
		cfg.Runner.KillAfter = runKillAfter
	}
	if cmd.Flags().Changed("suffix") {
		cfg.Discovery.Suffix = runSuffix
	}
}

// parseParams converts NAME=value flags into an EnvPairSet, keeping flag
// order so later flags override earlier ones.
func parseParams(raw []string) (types.EnvPairSet, error) {
	pairs := make([]types.EnvPair, 0, len(raw))
	for _, p := range raw {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return types.EnvPairSet{}, fmt.Errorf("invalid --param %q, expected NAME=value", p)
		}
		pairs = append(pairs, types.EnvPair{Name: name, Value: value})
	}
	return types.NewEnvPairSet(pairs...), nil
}

func printOutcome(cmd *cobra.Command, hooks types.HookSet, outcome types.Outcome) {
	out := cmd.OutOrStdout()
	switch outcome.Kind {
	case types.OutcomeOk:
		fmt.Fprintf(out, "OK: %d hook(s) completed\n", hooks.Len())
	case types.OutcomeWarning:
		fmt.Fprintf(out, "OK (with warning): %s\n", outcome.Message)
	case types.OutcomeInterrupt:
		fmt.Fprintf(out, "INTERRUPTED: %s\n", outcome.Message)
	case types.OutcomeScriptError:
		fmt.Fprintf(out, "FAILED: %s\n", outcome.Message)
	case types.OutcomeSystemError:
		fmt.Fprintf(out, "SYSTEM ERROR: %s\n", outcome.Message)
	}
	if trimmed := strings.TrimSpace(outcome.Stderr); trimmed != "" && outcome.IsError() {
		fmt.Fprintf(out, "stderr:\n%s\n", trimmed)
	}
}

func printStats(cmd *cobra.Command, s metrics.Summary) {
	fmt.Fprintf(cmd.OutOrStdout(),
		"hooks=%d p50=%s p95=%s p99=%s max=%s\n",
		s.Count, s.P50, s.P95, s.P99, s.Max)
}

// exitCodeFor maps the final outcome to the CLI process exit code.
func exitCodeFor(outcome types.Outcome) int {
	switch outcome.Kind {
	case types.OutcomeOk, types.OutcomeWarning:
		return 0
	case types.OutcomeInterrupt:
		return 100
	case types.OutcomeSystemError:
		return 2
	default:
		return 1
	}
}
