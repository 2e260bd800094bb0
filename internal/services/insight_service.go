package services

import (
	"context"
	"time"

	"github.com/soltixdb/finsight/internal/config"
	"github.com/soltixdb/finsight/internal/insights"
	"github.com/soltixdb/finsight/internal/logging"
	"github.com/soltixdb/finsight/internal/models"
)

// InsightService handles insight generation requests
type InsightService struct {
	logger    *logging.Logger
	generator *insights.Generator
	cfg       config.InsightsConfig
	now       func() time.Time
}

// NewInsightService creates a new InsightService
func NewInsightService(logger *logging.Logger, cfg config.InsightsConfig) *InsightService {
	return &InsightService{
		logger:    logger,
		generator: insights.NewGenerator(),
		cfg:       cfg,
		now:       time.Now,
	}
}

// InsightRequest represents an insight generation request. Budgets are
// merged over the configured ones; PeriodDays > 0 overrides the configured
// window.
type InsightRequest struct {
	Transactions []models.TransactionRecord
	Budgets      map[string]float64
	PeriodDays   int
	Now          time.Time
}

// Generate runs the insight detectors over the request's transactions.
func (s *InsightService) Generate(ctx context.Context, req *InsightRequest) ([]insights.Insight, error) {
	if req == nil {
		return nil, NewServiceError(CodeInvalidRequest, "request is required")
	}
	if req.PeriodDays < 0 {
		return nil, NewServiceErrorWithDetails(CodeInvalidRequest, "period_days cannot be negative",
			map[string]interface{}{"period_days": req.PeriodDays})
	}
	for category, limit := range req.Budgets {
		if limit < 0 {
			return nil, NewServiceErrorWithDetails(CodeInvalidRequest, "budget limits cannot be negative",
				map[string]interface{}{"category": category, "limit": limit})
		}
	}

	opts := insights.Options{
		PeriodDays: s.cfg.PeriodDays,
		Budgets:    s.cfg.BudgetsWith(req.Budgets),
		Now:        req.Now,
	}
	if req.PeriodDays > 0 {
		opts.PeriodDays = req.PeriodDays
	}
	if opts.Now.IsZero() {
		opts.Now = s.now()
	}

	startExec := time.Now()
	result := s.generator.Generate(req.Transactions, opts)

	counts := make(map[insights.Type]int)
	for _, in := range result {
		counts[in.Type]++
	}
	s.logger.WithContext(ctx).Info("Generated insights",
		"transactions", len(req.Transactions),
		"budgets", len(opts.Budgets),
		"period_days", opts.PeriodDays,
		"insights", len(result),
		"by_type", counts,
		"duration", time.Since(startExec),
	)

	return result, nil
}
