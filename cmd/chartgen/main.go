// Package main provides the chartgen CLI for rendering dashboard charts offline.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"resupplycharts/internal/charts"
	"resupplycharts/internal/config"
	"resupplycharts/internal/dashboard"
	"resupplycharts/internal/fetchers"
	"resupplycharts/internal/logger"
	"resupplycharts/internal/reports"
	"resupplycharts/internal/server"
	"resupplycharts/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand
type globalFlags struct {
	snapshot string
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "chartgen",
		Short:   "Render resupply dashboard charts",
		Long:    `chartgen renders the dashboard's time-series charts as SVG or PNG and builds full dashboard reports.`,
		Version: config.GetVersion(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Configure(flags.logLevel, "")
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.snapshot, "snapshot", "", "Read the snapshot from this JSON file instead of the configured source")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newRenderCmd(flags), newReportCmd(flags), newListCmd())
	return rootCmd
}

// source resolves the snapshot source from the flags or the environment
func (f *globalFlags) source(ctx context.Context) (fetchers.Source, *config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	if f.snapshot != "" {
		return fetchers.NewFileSource(f.snapshot), cfg, nil
	}
	return server.NewSource(cfg), cfg, nil
}

type renderFlags struct {
	output  string
	size    string
	style   string
	format  string
	pointer float64
	grid    bool
}

func newRenderCmd(global *globalFlags) *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render [chart]",
		Short: "Render one catalog chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, global, flags, args[0])
		},
	}
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flags.size, "size", "", "Chart size: small, medium, large (default: catalog size)")
	cmd.Flags().StringVar(&flags.style, "style", "", "Line style: continuous, step (default: catalog style)")
	cmd.Flags().StringVar(&flags.format, "format", "svg", "Output format: svg, png")
	cmd.Flags().Float64Var(&flags.pointer, "pointer", -1, "Pointer x position for the hover overlay (svg only)")
	cmd.Flags().BoolVar(&flags.grid, "grid", false, "Force grid lines on")
	return cmd
}

func runRender(cmd *cobra.Command, global *globalFlags, flags *renderFlags, name string) error {
	ctx := cmd.Context()
	spec, err := dashboard.Default().Lookup(name)
	if err != nil {
		return err
	}

	opts := spec.Options
	if flags.size != "" {
		if opts.Size, err = charts.ParseSize(flags.size); err != nil {
			return err
		}
	}
	if flags.style != "" {
		if opts.LineStyle, err = charts.ParseLineStyle(flags.style); err != nil {
			return err
		}
	}
	if flags.grid {
		opts.ShowGrid = true
	}

	source, _, err := global.source(ctx)
	if err != nil {
		return err
	}
	snap, err := source.Latest(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	series := spec.Series(snap)

	var out bytes.Buffer
	switch strings.ToLower(flags.format) {
	case "svg":
		chart := charts.New(series, opts)
		if flags.pointer >= 0 && !chart.PointerMove(flags.pointer) && opts.EnableHover {
			fmt.Fprintf(cmd.ErrOrStderr(), "pointer %.1f is outside the plot\n", flags.pointer)
		}
		if err := chart.Render(&out); err != nil {
			return err
		}
	case "png":
		if err := charts.RenderPNG(&out, series, opts); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid format: %s (must be svg or png)", flags.format)
	}

	return writeOutput(cmd.OutOrStdout(), flags.output, out.Bytes())
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newReportCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Build and store a full dashboard report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			source, cfg, err := global.source(ctx)
			if err != nil {
				return err
			}
			client, err := storage.NewClient(ctx, cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			generator, err := reports.NewGenerator(source, dashboard.Default())
			if err != nil {
				return err
			}
			report, index, err := reports.NewService(generator, reports.NewStorageOrchestrator(client)).Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d charts, %d files)\n", index, len(report.Charts), len(report.Files))
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, spec := range dashboard.Default().Specs() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-8s %s\n", spec.Name, spec.Options.Size, spec.Title)
			}
			return nil
		},
	}
}
