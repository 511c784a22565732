package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/lineship/internal/cliconfig"
	"github.com/bft-labs/lineship/internal/domain"
	"github.com/bft-labs/lineship/internal/report"
	"github.com/bft-labs/lineship/internal/watch"
	"github.com/bft-labs/lineship/pkg/lineship"
	"github.com/bft-labs/lineship/pkg/log"
)

const (
	exitRuntime = 1
	exitUsage   = 2
)

const longHelp = `Replay a line-oriented text file to a TCP or UDP endpoint.

Lines are grouped into batches of --batch-size (or $BATCH_SIZE, default 1000)
and each batch is sent as one frame: the lines joined with "\n", one newline
per line. TCP delivers all frames over one connection, in order. UDP sends
one datagram per frame without delivery guarantees.

Settings are read from the config file, then LINESHIP_* environment
variables, then flags; later sources win.`

var exampleUsage = strings.TrimSpace(`
  lineship events.log localhost 9000 tcp
  lineship --batch-size 64 --progress events.log 10.0.0.5 5140 udp
  BATCH_SIZE=500 lineship watch events.log collector 9000 tcp
`)

// usageError marks bad invocations so they exit with exitUsage.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// positionalArgs requires <file_path> <hostname> <port> <tcp|udp>.
func positionalArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(4)(cmd, args); err != nil {
		return usageError{err}
	}
	return nil
}

// cli holds the state shared by the root and watch commands.
type cli struct {
	cfg       cliconfig.Config
	cfgPath   string
	batchSize int
}

func newCLI() *cli {
	return &cli{cfg: cliconfig.DefaultConfig()}
}

func main() {
	root := newCLI().rootCmd()
	if err := root.Execute(); err != nil {
		if exitCode(err) == exitUsage {
			fmt.Fprintf(os.Stderr, "Error: %v\n\n%s", err, root.UsageString())
		} else {
			logger := cliconfig.Logger()
			logger.Error().Err(err).Msg("lineship")
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var uerr usageError
	if errors.As(err, &uerr) {
		return exitUsage
	}
	return exitRuntime
}

func (c *cli) rootCmd() *cobra.Command {
	cfg := &c.cfg

	// prepare layers file, env and flags over the defaults and validates the result.
	prepare := func(cmd *cobra.Command, args []string) error {
		cfg.FilePath, cfg.Host, cfg.Port, cfg.Protocol = args[0], args[1], args[2], args[3]

		changed := map[string]bool{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		cfgFile := c.cfgPath
		if cfgFile == "" {
			cfgFile = cliconfig.DefaultConfigPath()
		}
		if cfgFile != "" && cliconfig.FileExists(cfgFile) {
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				return usageError{fmt.Errorf("%w: load config %s: %w", domain.ErrConfig, cfgFile, err)}
			}
			if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
				return usageError{fmt.Errorf("%w: %s: %w", domain.ErrConfig, cfgFile, err)}
			}
		}

		// LINESHIP_* override file config but are overridden by flags (checked via changed map)
		if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
			return usageError{fmt.Errorf("%w: environment: %w", domain.ErrConfig, err)}
		}

		var flagBatch *int
		if changed["batch-size"] {
			flagBatch = &c.batchSize
		}
		cfg.BatchSize = cliconfig.ResolveBatchSize(flagBatch, os.Getenv(cliconfig.BatchSizeEnv), cfg.BatchSize)

		if _, err := domain.ParseTransportKind(cfg.Protocol); err != nil {
			return usageError{err}
		}
		if err := cfg.Validate(); err != nil {
			return usageError{err}
		}
		if err := cliconfig.SetLogLevel(cfg.LogLevel); err != nil {
			return usageError{err}
		}

		logger := cliconfig.Logger()
		logger.Debug().Interface("config", cfg).Msg("configuration")
		return nil
	}

	root := &cobra.Command{
		Use:           "lineship [flags] <file_path> <hostname> <port> <tcp|udp>",
		Short:         "Replay a line-oriented file to a TCP or UDP endpoint in batches",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          positionalArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE:       prepare,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cliconfig.Logger()
			l, progress, err := newReplayer(*cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context(), logger)
			defer stop()

			type result struct {
				stats lineship.Stats
				err   error
			}
			// The replay runs on its own goroutine so this one stays free for signals.
			done := make(chan result, 1)
			go func() {
				stats, err := l.Run(ctx)
				done <- result{stats, err}
			}()
			res := <-done

			if progress != nil {
				progress.Finish()
			}
			if err := report.WriteStats(cmd.OutOrStdout(), res.stats); err != nil {
				logger.Warn().Err(err).Msg("write stats")
			}
			return res.err
		},
	}

	watchCmd := &cobra.Command{
		Use:     "watch [flags] <file_path> <hostname> <port> <tcp|udp>",
		Short:   "Replay the file, then replay it again every time it changes",
		Args:    positionalArgs,
		PreRunE: prepare,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cliconfig.Logger()
			l, progress, err := newReplayer(*cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context(), logger)
			defer stop()

			run := func(ctx context.Context) error {
				if progress != nil {
					total, _ := l.CountLines()
					progress.Reset(total)
				}
				stats, err := l.Run(ctx)
				if progress != nil {
					progress.Finish()
				}
				if werr := report.WriteStats(cmd.OutOrStdout(), stats); werr != nil {
					logger.Warn().Err(werr).Msg("write stats")
				}
				return err
			}

			w := watch.New(cfg.FilePath, cfg.WatchDebounce, run, log.NewZerologAdapterWithLogger(logger))
			return w.Run(ctx)
		},
	}
	root.AddCommand(watchCmd)

	// Flags
	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.lineship/config.toml)")
	flags.IntVarP(&c.batchSize, "batch-size", "b", cliconfig.DefaultBatchSize, "lines per frame (overrides $"+cliconfig.BatchSizeEnv+")")
	flags.DurationVar(&cfg.DialTimeout, "dial-timeout", cfg.DialTimeout, "TCP connect timeout (0 uses the default, negative disables it)")
	flags.BoolVar(&cfg.NoDelay, "no-delay", cfg.NoDelay, "disable Nagle's algorithm on TCP")
	flags.IntVar(&cfg.MaxLineBytes, "max-line-bytes", cfg.MaxLineBytes, "longest accepted input line")
	flags.IntVar(&cfg.MaxDatagramSize, "max-datagram-size", cfg.MaxDatagramSize, "largest UDP frame")
	flags.BoolVar(&cfg.Progress, "progress", cfg.Progress, "draw a progress bar on stderr")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	watchCmd.Flags().DurationVar(&cfg.WatchDebounce, "debounce", cfg.WatchDebounce, "quiet period after a change before replaying")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	return root
}

// newReplayer builds the library instance for cfg. The progress indicator is
// nil unless enabled.
func newReplayer(cfg cliconfig.Config, logger zerolog.Logger) (*lineship.Lineship, *report.Progress, error) {
	libCfg := lineship.Config{
		FilePath:        cfg.FilePath,
		Host:            cfg.Host,
		Port:            cfg.Port,
		Transport:       cfg.Kind(),
		BatchSize:       cfg.BatchSize,
		DialTimeout:     cfg.DialTimeout,
		DisableNoDelay:  !cfg.NoDelay,
		MaxLineBytes:    cfg.MaxLineBytes,
		MaxDatagramSize: cfg.MaxDatagramSize,
	}

	opts := []lineship.Option{lineship.WithLogger(log.NewZerologAdapterWithLogger(logger))}

	var progress *report.Progress
	if cfg.Progress {
		total, err := countLines(libCfg)
		if err != nil {
			logger.Warn().Err(err).Msg("count lines; progress shows a running count")
		}
		progress = report.NewProgress(os.Stderr, total)
		opts = append(opts, lineship.WithEventHandler(progressHandler{progress: progress}))
	}

	l, err := lineship.New(libCfg, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create lineship: %w", err)
	}
	return l, progress, nil
}

func countLines(cfg lineship.Config) (int, error) {
	l, err := lineship.New(cfg)
	if err != nil {
		return 0, err
	}
	return l.CountLines()
}

// progressHandler forwards send events to the progress bar.
type progressHandler struct {
	progress *report.Progress
}

func (h progressHandler) OnBatchSent(e lineship.BatchSentEvent) {
	h.progress.OnBatchSent(e.Records, e.Bytes, e.Duration)
}

func (h progressHandler) OnSendError(e lineship.SendErrorEvent) {
	h.progress.OnSendError(e.Error, e.Records)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context, logger zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			logger.Info().Msg("received signal, stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}
