package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/yudaprama/timeid/internal/bench"
	"github.com/yudaprama/timeid/internal/idgenerator"
	"github.com/yudaprama/timeid/internal/metrics"
	"github.com/yudaprama/timeid/internal/reporter"
	"go.uber.org/zap"
)

func newGenerateCommand(a *app) *cobra.Command {
	var (
		count  int
		format string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Mint identifiers from the system clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("-n must be positive, got %d", count)
			}
			if _, err := formatID(0, format); err != nil {
				return err
			}
			g, err := a.generator()
			if err != nil {
				return err
			}
			return printIDs(cmd.OutOrStdout(), g.GenerateBatch(count), format)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "how many identifiers to mint")
	cmd.Flags().StringVar(&format, "format", "text", "output form: text, hex or int")
	return cmd
}

func newDecodeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <id>...",
		Short: "Explain identifiers given as text or hex",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]idgenerator.ID, 0, len(args))
			for _, arg := range args {
				id, err := idgenerator.Parse(arg)
				if errors.Is(err, idgenerator.ErrChecksumMismatch) {
					return fmt.Errorf("%q looks like an identifier but has a typo: %w", arg, err)
				}
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			layout, _ := a.cfg.EffectiveLayout()
			epoch, _ := a.cfg.EpochTime()
			reporter.IDs(cmd.OutOrStdout(), reporter.NewDecoder(layout, epoch), ids)
			return nil
		},
	}
}

func newStampCommand(a *app) *cobra.Command {
	var (
		at     string
		count  int
		format string
	)
	cmd := &cobra.Command{
		Use:   "stamp",
		Short: "Mint identifiers for an explicit time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			when := time.Now()
			if at != "" {
				var err error
				if when, err = time.Parse(time.RFC3339Nano, at); err != nil {
					return fmt.Errorf("--at: %w", err)
				}
			}
			if count <= 0 {
				return fmt.Errorf("-n must be positive, got %d", count)
			}
			s, err := a.stamper()
			if err != nil {
				return err
			}

			ids := make([]idgenerator.ID, 0, count)
			for i := 0; i < count; i++ {
				id, err := s.StampAt(when)
				if err != nil {
					return fmt.Errorf("stamp %d of %d: %w", i+1, count, err)
				}
				ids = append(ids, id)
			}
			return printIDs(cmd.OutOrStdout(), ids, format)
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "RFC3339 time to stamp, default now")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "how many identifiers to mint")
	cmd.Flags().StringVar(&format, "format", "text", "output form: text, hex or int")
	return cmd
}

func newBenchCommand(a *app) *cobra.Command {
	var (
		workers     int
		perWorker   int
		showMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Generate concurrently and verify uniqueness and ordering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Bench.Workers
			}
			if !cmd.Flags().Changed("per-worker") {
				perWorker = a.cfg.Bench.PerWorker
			}
			g, err := a.generator()
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			if _, err := metrics.Register(reg, g); err != nil {
				return err
			}

			res, err := bench.Run(cmd.Context(), g, workers, perWorker, a.lg)
			if err != nil {
				return err
			}
			reporter.Bench(cmd.OutOrStdout(), res)

			if !showMetrics {
				return nil
			}
			families, err := reg.Gather()
			if err != nil {
				return err
			}
			enc := expfmt.NewEncoder(cmd.OutOrStdout(), expfmt.FmtText)
			for _, mf := range families {
				if err := enc.Encode(mf); err != nil {
					a.lg.Warn("encode metric family", zap.String("name", mf.GetName()), zap.Error(err))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent goroutines, default from config")
	cmd.Flags().IntVar(&perWorker, "per-worker", 0, "identifiers per goroutine, default from config")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print collector output in Prometheus text format")
	return cmd
}

func newLayoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Show the active bit layout and its capacity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := a.cfg.EffectiveLayout()
			if err != nil {
				return err
			}
			epoch, err := a.cfg.EpochTime()
			if err != nil {
				return err
			}
			reporter.Layout(cmd.OutOrStdout(), layout, epoch)
			return nil
		},
	}
}
