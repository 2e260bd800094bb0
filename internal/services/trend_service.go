package services

import (
	"context"
	"math"
	"time"

	"github.com/soltixdb/finsight/internal/analytics"
	"github.com/soltixdb/finsight/internal/analytics/anomaly"
	"github.com/soltixdb/finsight/internal/analytics/trend"
	"github.com/soltixdb/finsight/internal/config"
	"github.com/soltixdb/finsight/internal/logging"
	"github.com/soltixdb/finsight/internal/models"
)

// TrendService handles trend analysis requests
type TrendService struct {
	logger   *logging.Logger
	analyzer *trend.Analyzer
	cfg      config.TrendConfig
}

// NewTrendService creates a new TrendService
func NewTrendService(logger *logging.Logger, cfg config.TrendConfig) *TrendService {
	return &TrendService{
		logger:   logger,
		analyzer: trend.NewAnalyzer(),
		cfg:      cfg,
	}
}

// TransactionTrend is a trend result together with the series it was
// computed from.
type TransactionTrend struct {
	Granularity string                `json:"granularity"`
	Kind        models.Kind           `json:"kind"`
	Category    string                `json:"category,omitempty"`
	Series      []analytics.DataPoint `json:"series"`
	Result      *trend.Result         `json:"result"`
}

// AnalyzeSeries classifies a single series.
func (s *TrendService) AnalyzeSeries(ctx context.Context, series []analytics.DataPoint) (*trend.Result, error) {
	if err := validateSeries(series); err != nil {
		return nil, err
	}

	startExec := time.Now()
	result, err := s.analyzer.Analyze(series)
	if err != nil {
		s.logger.WithContext(ctx).Debug("Trend analysis rejected", "points", len(series), "error", err)
		return nil, fromEngineError(err)
	}

	s.logger.WithContext(ctx).Debug("Trend analysis completed",
		"points", len(series),
		"type", result.Type,
		"direction", result.Direction,
		"duration", time.Since(startExec),
	)
	return result, nil
}

// AnalyzeTransactions projects transactions into a series and analyzes it.
func (s *TrendService) AnalyzeTransactions(ctx context.Context, txns []models.TransactionRecord, req ProjectionRequest) (*TransactionTrend, error) {
	req = s.withDefaults(req)

	series, err := Project(txns, req)
	if err != nil {
		return nil, &ServiceError{Code: CodeInvalidRequest, Message: err.Error(), Err: err}
	}

	result, err := s.AnalyzeSeries(ctx, series)
	if err != nil {
		return nil, err
	}

	s.logger.WithContext(ctx).Info("Analyzed transactions",
		"transactions", len(txns),
		"periods", len(series),
		"granularity", req.Granularity,
		"kind", req.Kind,
		"category", req.Category,
	)

	return &TransactionTrend{
		Granularity: req.Granularity,
		Kind:        req.Kind,
		Category:    req.Category,
		Series:      series,
		Result:      result,
	}, nil
}

// ComparePeriods analyzes two series and reports the change from the first
// to the second.
func (s *TrendService) ComparePeriods(ctx context.Context, period1, period2 []analytics.DataPoint) (*trend.Comparison, error) {
	if err := validateSeries(period1); err != nil {
		return nil, err
	}
	if err := validateSeries(period2); err != nil {
		return nil, err
	}

	cmp, err := s.analyzer.ComparePeriods(period1, period2)
	if err != nil {
		return nil, fromEngineError(err)
	}

	s.logger.WithContext(ctx).Debug("Period comparison completed",
		"period1_points", len(period1),
		"period2_points", len(period2),
		"average_change_pct", cmp.AverageChangePercentage,
		"shift", cmp.TrendShift,
	)
	return cmp, nil
}

// ComparePeriodsAt splits series at the given time: points strictly before
// split form the first period, the rest the second.
func (s *TrendService) ComparePeriodsAt(ctx context.Context, series []analytics.DataPoint, split time.Time) (*trend.Comparison, error) {
	if split.IsZero() {
		return nil, NewServiceError(CodeInvalidRequest, "split time is required")
	}

	var before, after []analytics.DataPoint
	for _, p := range series {
		if p.Time.Before(split) {
			before = append(before, p)
		} else {
			after = append(after, p)
		}
	}
	return s.ComparePeriods(ctx, before, after)
}

// DetectAnomalies flags outliers in series. A sensitivity <= 0 uses the
// configured value.
func (s *TrendService) DetectAnomalies(ctx context.Context, series []analytics.DataPoint, sensitivity float64) ([]anomaly.Anomaly, error) {
	if err := validateSeries(series); err != nil {
		return nil, err
	}
	if sensitivity <= 0 {
		sensitivity = s.cfg.AnomalySensitivity
	}

	found := s.analyzer.DetectAnomalies(series, sensitivity)
	if found == nil {
		found = []anomaly.Anomaly{}
	}

	s.logger.WithContext(ctx).Debug("Anomaly detection completed",
		"points", len(series),
		"sensitivity", sensitivity,
		"anomalies", len(found),
	)
	return found, nil
}

func (s *TrendService) withDefaults(req ProjectionRequest) ProjectionRequest {
	if req.Kind == "" {
		req.Kind = models.KindExpense
	}
	if req.Granularity == "" {
		req.Granularity = s.cfg.Granularity
	}
	if req.Granularity == "" {
		req.Granularity = config.GranularityDay
	}
	return req
}

// validateSeries rejects values the statistics cannot represent.
func validateSeries(series []analytics.DataPoint) error {
	for i, p := range series {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return NewServiceErrorWithDetails(CodeInvalidSeries, "series contains a non-finite value",
				map[string]interface{}{"index": i})
		}
	}
	return nil
}
