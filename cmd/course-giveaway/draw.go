package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"course-giveaway/internal/config"
	"course-giveaway/internal/logger"
	"course-giveaway/internal/models"
	"course-giveaway/internal/notify"
	"course-giveaway/internal/services"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type drawOptions struct {
	chartOut string
	link     bool
	report   bool
	animate  bool
}

func newDrawCmd(root *options) *cobra.Command {
	opts := &drawOptions{}

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Pick a winner in the terminal",
		Long: `Draw a winner without opening a window.

The winner is printed to standard output. Optional outputs:
  --chart-out  write the probability chart as PNG
  --link       print the WhatsApp deep link and a scannable QR code
  --report     write the PDF draw report (into --report-dir or the current directory)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if opts.report && cfg.Report.Dir == "" {
				cfg.Report.Dir = "."
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runDraw(ctx, cfg, log, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.chartOut, "chart-out", "", "write the chart PNG to this file")
	cmd.Flags().BoolVar(&opts.link, "link", false, "print the WhatsApp link and QR code for the winner")
	cmd.Flags().BoolVar(&opts.report, "report", false, "write a PDF report of the draw")
	cmd.Flags().BoolVar(&opts.animate, "animate", false, "play the name shuffle before announcing")
	return cmd
}

func runDraw(ctx context.Context, cfg *config.Config, log logger.Logger, opts *drawOptions, out io.Writer) error {
	service := services.NewGiveawayService(cfg, newPicker(cfg), nil, log)
	log.Debug("DrawCommand", "console draw", describe(cfg))

	r, err := service.Prepare(ctx)
	if services.IsNoAttendees(err) {
		color.New(color.FgYellow).Fprintln(out, "No attendees found in the CSV file.")
		return nil
	}
	if err != nil {
		return err
	}

	if opts.animate {
		err := service.Animate(ctx, r, func(name string) {
			fmt.Fprintf(out, "\r\033[K%s", name)
		})
		fmt.Fprint(out, "\r\033[K")
		if err != nil {
			return err
		}
	}

	d, err := service.Select(r)
	if err != nil {
		return err
	}

	fmt.Fprint(out, "The winner is: ")
	color.New(color.FgGreen, color.Bold).Fprintln(out, d.Winner.Name)
	color.New(color.Faint).Fprintf(out, "draw %s, %d attendees\n", d.ShortID(), r.Len())

	var png []byte
	if opts.chartOut != "" || cfg.Report.Dir != "" {
		if _, png, err = service.Chart(d); err != nil {
			return err
		}
	}
	if opts.chartOut != "" {
		if err := os.WriteFile(opts.chartOut, png, 0o644); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		fmt.Fprintf(out, "Chart written to %s\n", opts.chartOut)
	}

	if path, err := service.Report(ctx, d, png); err != nil {
		return err
	} else if path != "" {
		fmt.Fprintf(out, "Report written to %s\n", path)
	}

	if opts.link {
		return printLink(out, service, d)
	}
	return nil
}

func printLink(out io.Writer, service *services.GiveawayService, d *models.Draw) error {
	n, err := service.Notification(d)
	if errors.Is(err, notify.ErrNoContact) {
		color.New(color.FgYellow).Fprintf(out, "%s has no contact number, no message can be sent.\n", d.Winner.Name)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, n.Link.String())
	qr, err := notify.QRCodeText(n.Link)
	if err != nil {
		return err
	}
	fmt.Fprint(out, qr)
	return nil
}
