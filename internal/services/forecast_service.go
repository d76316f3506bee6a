package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/config"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/forecast"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/logging"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/models"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/store"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/utils"
)

// ForecastService runs the forecasting engine over stored or uploaded series
type ForecastService struct {
	logger *logging.Logger
	store  store.Store
	cfg    config.ForecastConfig
}

// NewForecastService creates a new ForecastService
func NewForecastService(logger *logging.Logger, st store.Store, cfg config.ForecastConfig) *ForecastService {
	return &ForecastService{
		logger: logger,
		store:  st,
		cfg:    cfg,
	}
}

// ForecastOptions carries the per-request tuning parameters. Zero values
// select the configured defaults; Volatility is a pointer because zero noise
// is a valid override.
type ForecastOptions struct {
	Granularity string
	Horizon     int
	Window      int
	Trials      int
	Volatility  *float64
	Confidence  float64
}

// resolve merges the request options with the configured defaults and
// enforces the request limits.
func (s *ForecastService) resolve(opts ForecastOptions) (forecast.Config, error) {
	granularity := opts.Granularity
	if granularity == "" {
		granularity = string(forecast.GranularityDaily)
	}
	g, err := forecast.ParseGranularity(granularity)
	if err != nil {
		return forecast.Config{}, NewServiceErrorWithDetails("INVALID_REQUEST",
			fmt.Sprintf("unknown granularity %q", opts.Granularity),
			map[string]interface{}{
				"supported": []string{
					string(forecast.GranularityDaily),
					string(forecast.GranularityMonthly),
					string(forecast.GranularityYearly),
				},
			})
	}

	horizon := opts.Horizon
	if horizon <= 0 {
		horizon = 1
	}
	if s.cfg.MaxHorizon > 0 && horizon > s.cfg.MaxHorizon {
		return forecast.Config{}, &ServiceError{
			Code:    "INVALID_REQUEST",
			Message: fmt.Sprintf("horizon %d exceeds the maximum of %d", horizon, s.cfg.MaxHorizon),
		}
	}

	engineCfg := forecast.DefaultConfig(g, horizon)

	window := opts.Window
	if window == 0 {
		window = s.cfg.Window
	}
	if window > 0 {
		engineCfg.Smoothing.Window = window
	}

	trials := opts.Trials
	if trials == 0 {
		trials = s.cfg.Trials
	}
	if s.cfg.MaxTrials > 0 && trials > s.cfg.MaxTrials {
		return forecast.Config{}, &ServiceError{
			Code:    "INVALID_REQUEST",
			Message: fmt.Sprintf("trials %d exceeds the maximum of %d", trials, s.cfg.MaxTrials),
		}
	}
	if trials > 0 {
		engineCfg.MonteCarlo.Trials = trials
	}

	if opts.Volatility != nil {
		engineCfg.MonteCarlo.Volatility = *opts.Volatility
	} else if s.cfg.Volatility > 0 {
		engineCfg.MonteCarlo.Volatility = s.cfg.Volatility
	}

	if opts.Confidence != 0 {
		engineCfg.MonteCarlo.Confidence = opts.Confidence
	} else if s.cfg.Confidence > 0 {
		engineCfg.MonteCarlo.Confidence = s.cfg.Confidence
	}

	return engineCfg, nil
}

// ForProduct forecasts a product's stored sales history.
func (s *ForecastService) ForProduct(ctx context.Context, productID string, opts ForecastOptions) (*models.ForecastResponse, error) {
	if productID == "" {
		return nil, NewServiceError("INVALID_REQUEST", "product_id is required")
	}

	engineCfg, err := s.resolve(opts)
	if err != nil {
		return nil, err
	}

	series, err := s.store.SalesHistory(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to load sales history",
			"error", err,
			"product_id", productID)
		return nil, NewServiceError("STORE_ERROR", "failed to load sales history")
	}
	if len(series) == 0 {
		return nil, &ServiceError{
			Code:    "PRODUCT_NOT_FOUND",
			Message: fmt.Sprintf("no sales recorded for product %q", productID),
		}
	}

	return s.run(productID, series, engineCfg)
}

// ForSeries forecasts a caller-supplied series, bypassing the store. Used by
// CSV uploads.
func (s *ForecastService) ForSeries(productID string, series forecast.Series, opts ForecastOptions) (*models.ForecastResponse, error) {
	engineCfg, err := s.resolve(opts)
	if err != nil {
		return nil, err
	}
	return s.run(productID, series, engineCfg)
}

// run executes the engine and converts its result into the response shape.
func (s *ForecastService) run(productID string, series forecast.Series, engineCfg forecast.Config) (*models.ForecastResponse, error) {
	start := time.Now()

	result, err := forecast.Forecast(series, engineCfg)
	if err != nil {
		return nil, mapEngineError(err)
	}

	s.logger.Info("Forecast completed",
		"product_id", productID,
		"granularity", string(result.Granularity),
		"horizon", len(result.Steps),
		"history_points", len(result.History),
		"latency_ms", time.Since(start).Milliseconds())

	return buildForecastResponse(productID, result), nil
}

// mapEngineError translates engine errors into ServiceErrors.
func mapEngineError(err error) error {
	switch {
	case errors.Is(err, forecast.ErrInsufficientHistory), errors.Is(err, forecast.ErrEmptySeries):
		return NewServiceError("INSUFFICIENT_HISTORY", err.Error())
	case errors.Is(err, forecast.ErrInvalidHorizon), errors.Is(err, forecast.ErrInvalidConfig):
		return NewServiceError("INVALID_REQUEST", err.Error())
	default:
		return NewServiceError("FORECAST_FAILED", err.Error())
	}
}

// buildForecastResponse renders an engine result, rounding every reported
// value to two decimals at this boundary only.
func buildForecastResponse(productID string, result *forecast.Result) *models.ForecastResponse {
	history := make([]models.HistoryPoint, len(result.History))
	for i, p := range result.History {
		history[i] = models.HistoryPoint{
			Date:  p.Time.Format(models.DateLayout),
			Sales: utils.Round2(p.Value),
		}
	}

	steps := make([]models.ForecastStep, len(result.Steps))
	for i, step := range result.Steps {
		steps[i] = models.ForecastStep{
			Date:     step.Time.Format(models.DateLayout),
			Forecast: utils.Round2(step.Value),
			Lower:    utils.Round2(step.Lower),
			Upper:    utils.Round2(step.Upper),
		}
	}

	last := steps[len(steps)-1]
	return &models.ForecastResponse{
		ProductID:       productID,
		Granularity:     string(result.Granularity),
		History:         history,
		Forecasts:       steps,
		FinalPrediction: last.Forecast,
		Date:            last.Date,
		LowConf:         last.Lower,
		HighConf:        last.Upper,
		Warnings:        result.Warnings,
	}
}
