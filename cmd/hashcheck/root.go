package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"FileHashValidator/internal/config"
	"FileHashValidator/internal/index"
	"FileHashValidator/internal/logger"
	"FileHashValidator/internal/metrics"
	"FileHashValidator/internal/progress"
	"FileHashValidator/internal/report"
	"FileHashValidator/internal/verify"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// exitError carries a process exit status out of cobra's RunE.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// isTerminal is replaced in tests.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return verify.ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintln(stderr, "error:", err)
	return verify.ExitManifest
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   config.AppName + " [flags] <manifest.json|manifest.xml>",
		Short: "Verify file checksums listed in a JSON or XML manifest",
		Long: `Verify file checksums (crc32, md5, sha256) listed in a JSON or XML manifest.

Exit status: 0 when every file matches, 1 when any file mismatches or cannot
be read, 2 when the manifest cannot be loaded or is invalid.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			code := execute(cfg, args[0], stdout, stderr)
			if code != verify.ExitOK {
				return &exitError{code: code}
			}
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./.hashcheck.yaml or $HOME/.hashcheck.yaml)")
	flags.StringP("workdir", "w", "", "directory used to resolve relative manifest paths (default is the current directory)")
	flags.Bool("no-progress", false, "disable progress output")
	flags.String("progress-style", config.ProgressLine, "progress rendering: line or bar")
	flags.Int("chunk-size", 0, "read size in bytes (default 1 MiB)")
	flags.String("color", config.ColorAuto, "colorize the report: auto, always or never")
	flags.Bool("stats", false, "print run statistics after the report")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("log-format", "human", "log format: human or json")
	flags.String("log-file", "", "also write logs to this file")

	return cmd
}

func execute(cfg *config.Config, manifestPath string, stdout, stderr io.Writer) int {
	if err := logger.Init(logger.Config{Debug: cfg.Debug, Format: cfg.LogFormat, File: cfg.LogFile}); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return verify.ExitManifest
	}
	defer func() { _ = logger.Sync() }()

	colorize := cfg.Color == config.ColorAlways || (cfg.Color == config.ColorAuto && isTerminal(stdout))
	out := report.NewPrinter(stdout, colorize)
	errOut := report.NewPrinter(stderr, colorize && isTerminal(stderr))

	records, err := index.Load(manifestPath, cfg.Workdir)
	if err != nil {
		logger.LogDebug("manifest rejected", map[string]interface{}{"manifest": manifestPath, "error": err.Error()})
		errOut.Error(err)
		return report.ExitCode(nil, err)
	}

	var sinks []progress.Sink
	if !cfg.NoProgress && isTerminal(stderr) {
		if cfg.ProgressStyle == config.ProgressBar {
			sinks = append(sinks, progress.NewBar(stderr))
		} else {
			sinks = append(sinks, progress.NewReporter(stderr))
		}
	}
	stats := &metrics.Stats{}
	sinks = append(sinks, stats)

	summary := verify.Verify(records, progress.Multi(sinks...), verify.Options{ChunkSize: cfg.ChunkSize})
	stats.SetOutcomes(summary.OK, len(summary.Mismatches), len(summary.ReadErrors))

	out.Summary(summary)
	if cfg.Stats {
		metrics.Print(stdout, stats)
	}

	logger.LogInfo("verification finished", map[string]interface{}{
		"manifest":    manifestPath,
		"total":       summary.Total,
		"ok":          summary.OK,
		"mismatched":  len(summary.Mismatches),
		"read_errors": len(summary.ReadErrors),
		"duration_ms": summary.Duration.Milliseconds(),
	})
	return report.ExitCode(summary, nil)
}
