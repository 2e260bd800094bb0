package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/soltixdb/finsight/internal/analytics"
	"github.com/soltixdb/finsight/internal/analytics/trend"
	"github.com/soltixdb/finsight/internal/ingest"
	"github.com/soltixdb/finsight/internal/logging"
	"github.com/soltixdb/finsight/internal/models"
	"github.com/soltixdb/finsight/internal/services"
)

// seriesFlags select how an input file becomes a series.
type seriesFlags struct {
	series      bool
	granularity string
	kind        string
	category    string
}

func (f *seriesFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.series, "series", false, "input is a plain time,value series instead of transactions")
	cmd.Flags().StringVar(&f.granularity, "granularity", "", "day, week or month (default from config)")
	cmd.Flags().StringVar(&f.kind, "kind", "expense", "transaction kind to analyze (expense, income)")
	cmd.Flags().StringVar(&f.category, "category", "", "only analyze this category")
}

func (f *seriesFlags) projection(loc *time.Location) (services.ProjectionRequest, error) {
	kind, err := models.ParseKind(f.kind)
	if err != nil {
		return services.ProjectionRequest{}, err
	}
	return services.ProjectionRequest{
		Kind:        kind,
		Category:    f.category,
		Granularity: f.granularity,
		Location:    loc,
	}, nil
}

// loadSeries reads path either as a plain series or as transactions
// projected with the configured granularity.
func (a *app) loadSeries(ctx context.Context, path string, f *seriesFlags) ([]analytics.DataPoint, error) {
	ctx = logging.WithSource(ctx, path)
	if f.series {
		series, err := ingest.LoadSeries(path, a.opts)
		if err != nil {
			return nil, err
		}
		logging.InfoCtx(ctx, "Loaded series", "points", len(series))
		return series, nil
	}

	txns, err := ingest.LoadFile(path, a.opts)
	if err != nil {
		return nil, err
	}
	req, err := f.projection(a.opts.Location)
	if err != nil {
		return nil, err
	}
	if req.Granularity == "" {
		req.Granularity = a.cfg.Trend.Granularity
	}

	series, err := services.Project(txns, req)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		logging.WarnCtx(ctx, "No transactions matched", "kind", req.Kind, "category", req.Category)
	}
	logging.InfoCtx(ctx, "Loaded transactions",
		"transactions", len(txns), "periods", len(series), "granularity", req.Granularity)
	return series, nil
}

func trendCmd(a *app) *cobra.Command {
	f := &seriesFlags{}
	cmd := &cobra.Command{
		Use:   "trend <file>",
		Short: "Classify the trend of a series and forecast the next periods",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithSource(cmd.Context(), args[0])

			if f.series {
				series, err := a.loadSeries(ctx, args[0], f)
				if err != nil {
					return err
				}
				result, err := a.trends.AnalyzeSeries(ctx, series)
				if err != nil {
					return err
				}
				if a.asJSON {
					return a.out.JSON(result)
				}
				return a.out.Trend(args[0], result)
			}

			txns, err := ingest.LoadFile(args[0], a.opts)
			if err != nil {
				return err
			}
			req, err := f.projection(a.opts.Location)
			if err != nil {
				return err
			}
			tt, err := a.trends.AnalyzeTransactions(ctx, txns, req)
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.out.JSON(tt)
			}
			heading := fmt.Sprintf("%s per %s", a.out.Category(string(tt.Kind)), tt.Granularity)
			if tt.Category != "" {
				heading += " in " + a.out.Category(tt.Category)
			}
			return a.out.Trend(heading, tt.Result)
		},
	}
	f.register(cmd)
	return cmd
}

func compareCmd(a *app) *cobra.Command {
	f := &seriesFlags{}
	var split string
	cmd := &cobra.Command{
		Use:   "compare <file> [other-file]",
		Short: "Compare two periods",
		Long: `Compare two periods, either two files or one file split at --split.
Points dated before the split belong to the first period.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			first, err := a.loadSeries(ctx, args[0], f)
			if err != nil {
				return err
			}

			var cmp *trend.Comparison
			switch {
			case len(args) == 2:
				if split != "" {
					return errors.New("--split cannot be combined with a second file")
				}
				second, err := a.loadSeries(ctx, args[1], f)
				if err != nil {
					return err
				}
				if cmp, err = a.trends.ComparePeriods(ctx, first, second); err != nil {
					return err
				}
			case split != "":
				at, err := ingest.ParseDate(split, a.opts)
				if err != nil {
					return fmt.Errorf("invalid --split: %w", err)
				}
				if cmp, err = a.trends.ComparePeriodsAt(ctx, first, at); err != nil {
					return err
				}
			default:
				return errors.New("either --split or a second file is required")
			}

			if a.asJSON {
				return a.out.JSON(cmp)
			}
			return a.out.Comparison(cmp)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&split, "split", "", "date splitting a single file into two periods")
	return cmd
}

func anomaliesCmd(a *app) *cobra.Command {
	f := &seriesFlags{}
	var sensitivity float64
	cmd := &cobra.Command{
		Use:   "anomalies <file>",
		Short: "Flag periods that deviate from the series baseline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithSource(cmd.Context(), args[0])

			series, err := a.loadSeries(ctx, args[0], f)
			if err != nil {
				return err
			}
			found, err := a.trends.DetectAnomalies(ctx, series, sensitivity)
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.out.JSON(found)
			}
			return a.out.Anomalies(found)
		},
	}
	f.register(cmd)
	cmd.Flags().Float64Var(&sensitivity, "sensitivity", 0, "z-score threshold (default from config)")
	return cmd
}

func insightsCmd(a *app) *cobra.Command {
	var (
		budgets    map[string]string
		periodDays int
		now        string
	)
	cmd := &cobra.Command{
		Use:   "insights <file>",
		Short: "Generate spending insights from transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithSource(cmd.Context(), args[0])

			txns, err := ingest.LoadFile(args[0], a.opts)
			if err != nil {
				return err
			}

			req := &services.InsightRequest{
				Transactions: txns,
				PeriodDays:   periodDays,
			}
			if req.Budgets, err = parseBudgets(budgets); err != nil {
				return err
			}
			if now != "" {
				if req.Now, err = ingest.ParseDate(now, a.opts); err != nil {
					return fmt.Errorf("invalid --now: %w", err)
				}
			}

			result, err := a.insights.Generate(ctx, req)
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.out.JSON(result)
			}
			return a.out.Insights(result)
		},
	}
	cmd.Flags().StringToStringVar(&budgets, "budget", nil, "category budget, e.g. --budget groceries=600 (repeatable)")
	cmd.Flags().IntVar(&periodDays, "period-days", 0, "only consider the last N days (default from config)")
	cmd.Flags().StringVar(&now, "now", "", "reference date for the period window (default: today)")
	return cmd
}

func parseBudgets(raw map[string]string) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	budgets := make(map[string]float64, len(raw))
	for category, value := range raw {
		limit, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid budget for %s: %q", category, value)
		}
		budgets[category] = limit
	}
	return budgets, nil
}
