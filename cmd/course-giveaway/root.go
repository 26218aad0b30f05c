package main

import (
	"fmt"
	"io"
	"os"

	"course-giveaway/internal/config"
	"course-giveaway/internal/logger"
	"course-giveaway/internal/selection"

	"github.com/spf13/cobra"
)

// options carries the raw flag values; only flags the user set override the
// loaded configuration.
type options struct {
	configPath string
	file       string
	sheet      string
	chart      string
	notify     bool
	noNotify   bool
	mode       string
	seed       uint64
	logLevel   string
	course     string
	reportDir  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "course-giveaway",
		Short: "Pick a random course winner from an attendee list",
		Long: `Course Giveaway loads attendees from a CSV or XLSX file, animates a random
draw in a desktop window, charts each attendee's chance of winning and
offers to message the winner on WhatsApp Web.

Without a subcommand the desktop window opens. Use "draw" for a console run.`,
		Version:       AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runGUI(cmd.Context(), cfg, log)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.DefaultPath+" when present)")
	flags.StringVarP(&opts.file, "file", "f", "", "attendee file (.csv or .xlsx)")
	flags.StringVar(&opts.sheet, "sheet", "", "worksheet to read from an .xlsx file")
	flags.StringVar(&opts.chart, "chart", "", "chart style: pie or bar")
	flags.BoolVar(&opts.notify, "notify", false, "offer to message the winner on WhatsApp")
	flags.BoolVar(&opts.noNotify, "no-notify", false, "never message the winner")
	flags.StringVar(&opts.mode, "notify-mode", "", "how to deliver the message: open or browser")
	flags.Uint64Var(&opts.seed, "seed", 0, "seed the draw for a reproducible winner")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.course, "course", "", "course name used in the message")
	flags.StringVar(&opts.reportDir, "report-dir", "", "directory for PDF draw reports")
	root.MarkFlagsMutuallyExclusive("notify", "no-notify")

	root.AddCommand(newDrawCmd(opts))
	return root
}

// setup loads the configuration, applies flags and builds the logger.
func setup(cmd *cobra.Command, opts *options, logOut io.Writer) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	applyFlags(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	if logOut == nil {
		logOut = os.Stderr
	}
	return cfg, logger.New(level, cfg.Log.Format, logOut), nil
}

func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	changed := func(name string) bool {
		f := cmd.Flag(name)
		return f != nil && f.Changed
	}

	if changed("file") {
		cfg.File = opts.file
	}
	if changed("sheet") {
		cfg.Sheet = opts.sheet
	}
	if changed("chart") {
		cfg.Chart.Style = opts.chart
	}
	if changed("notify") {
		cfg.Notify.Enabled = opts.notify
	}
	if changed("no-notify") {
		cfg.Notify.Enabled = !opts.noNotify
	}
	if changed("notify-mode") {
		cfg.Notify.Mode = opts.mode
	}
	if changed("seed") {
		seed := opts.seed
		cfg.Seed = &seed
	}
	if changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if changed("course") {
		cfg.Notify.Course = opts.course
	}
	if changed("report-dir") {
		cfg.Report.Dir = opts.reportDir
	}
}

func newPicker(cfg *config.Config) *selection.Picker {
	if cfg.Seed != nil {
		return selection.NewSeeded(*cfg.Seed)
	}
	return selection.NewRandom()
}

func describe(cfg *config.Config) map[string]interface{} {
	fields := map[string]interface{}{
		"file":   cfg.File,
		"chart":  cfg.Chart.Style,
		"notify": cfg.Notify.Enabled,
	}
	if cfg.Notify.Enabled {
		fields["notify_mode"] = cfg.Notify.Mode
	}
	if cfg.Seed != nil {
		fields["seed"] = fmt.Sprint(*cfg.Seed)
	}
	return fields
}
