package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"fragment-generator/internal/config"
	"fragment-generator/internal/report"
)

// errDiagnostics signals that the run reported errors; the diagnostics have
// already been printed.
var errDiagnostics = errors.New("generation reported errors")

// app holds the global flags and the state derived from them.
type app struct {
	configPath string
	color      string
	format     string
	verbose    bool
	quiet      bool
	jobs       int
	cacheDir   string

	logger *slog.Logger
	cfg    *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "fragment-generator",
		Short:         "Complete AutoMapper extension points from configuration fragments",
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to "+config.FileName+" (default: search upwards from the working directory)")
	flags.StringVar(&a.color, "color", "auto", "colorize output (auto|on|off)")
	flags.StringVar(&a.format, "format", string(report.FormatPretty), "diagnostic format (pretty|short|json)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log progress to stderr")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "hide info diagnostics")
	flags.IntVarP(&a.jobs, "jobs", "j", 0, "max parallel workers (0=auto)")
	flags.StringVar(&a.cacheDir, "cache-dir", "", "result cache directory (default: the user cache directory)")

	root.AddCommand(
		newGenCmd(a),
		newCheckCmd(a),
		newScanCmd(a),
		newProfilesCmd(a),
		newCodesCmd(),
		newCacheCmd(a),
		newVersionCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}

	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if _, err := report.ParseFormat(a.format); err != nil {
		return err
	}

	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}

		a.cfg = cfg
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		cfg, err := config.Discover(wd)
		if err != nil {
			return err
		}

		a.cfg = cfg
	}

	if a.cfg.Path != "" {
		a.logger.Debug("loaded config", "path", a.cfg.Path)
	}

	return nil
}

// reportOptions resolves the rendering options for the command's stderr.
func (a *app) reportOptions(cmd *cobra.Command) (report.Options, error) {
	format, err := report.ParseFormat(a.format)
	if err != nil {
		return report.Options{}, err
	}

	var f *os.File
	if file, ok := cmd.ErrOrStderr().(*os.File); ok {
		f = file
	}

	useColor, err := report.ResolveColor(a.color, f)
	if err != nil {
		return report.Options{}, err
	}

	return report.Options{Format: format, Color: useColor, Quiet: a.quiet}, nil
}
