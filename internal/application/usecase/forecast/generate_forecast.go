// Package forecast predicts next-period spending per category from trailing history.
package forecast

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// GenerateForecastInput represents the input for a forecast run.
type GenerateForecastInput struct {
	ProfileID uuid.UUID
	Period    entity.PredictionPeriod
}

// GenerateForecastOutput represents the regenerated predictions.
type GenerateForecastOutput struct {
	Predictions []*entity.Prediction
}

// GenerateForecastUseCase regenerates a profile's predictions for one period.
type GenerateForecastUseCase struct {
	ledgerRepo     adapter.LedgerRepository
	predictionRepo adapter.PredictionRepository
	clock          adapter.Clock
	engine         *Engine
}

// NewGenerateForecastUseCase creates a new GenerateForecastUseCase instance.
func NewGenerateForecastUseCase(
	ledgerRepo adapter.LedgerRepository,
	predictionRepo adapter.PredictionRepository,
	clock adapter.Clock,
	engine *Engine,
) *GenerateForecastUseCase {
	return &GenerateForecastUseCase{
		ledgerRepo:     ledgerRepo,
		predictionRepo: predictionRepo,
		clock:          clock,
		engine:         engine,
	}
}

// Execute runs the engine over the full ledger and replaces the stored predictions.
func (uc *GenerateForecastUseCase) Execute(ctx context.Context, input GenerateForecastInput) (*GenerateForecastOutput, error) {
	if input.Period == "" {
		input.Period = entity.PredictionPeriodNextMonth
	}

	transactions, err := uc.ledgerRepo.Snapshot(ctx, input.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	predictions, err := uc.engine.Forecast(input.ProfileID, transactions, input.Period, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := uc.predictionRepo.ReplaceForPeriod(ctx, input.ProfileID, input.Period, predictions); err != nil {
		return nil, fmt.Errorf("failed to store predictions: %w", err)
	}

	slog.Info("Forecast regenerated",
		"profileID", input.ProfileID.String(),
		"period", string(input.Period),
		"categories", len(predictions),
	)

	return &GenerateForecastOutput{Predictions: predictions}, nil
}

// GetPredictionsInput represents the input for reading stored predictions.
type GetPredictionsInput struct {
	ProfileID uuid.UUID
	Period    entity.PredictionPeriod
}

// GetPredictionsUseCase reads the last generated predictions.
type GetPredictionsUseCase struct {
	predictionRepo adapter.PredictionRepository
}

// NewGetPredictionsUseCase creates a new GetPredictionsUseCase instance.
func NewGetPredictionsUseCase(predictionRepo adapter.PredictionRepository) *GetPredictionsUseCase {
	return &GetPredictionsUseCase{
		predictionRepo: predictionRepo,
	}
}

// Execute reads the predictions of one period.
func (uc *GetPredictionsUseCase) Execute(ctx context.Context, input GetPredictionsInput) (*GenerateForecastOutput, error) {
	if input.Period == "" {
		input.Period = entity.PredictionPeriodNextMonth
	}
	if !input.Period.IsValid() {
		return nil, invalidPeriod(input.Period)
	}

	predictions, err := uc.predictionRepo.FindByPeriod(ctx, input.ProfileID, input.Period)
	if err != nil {
		return nil, fmt.Errorf("failed to load predictions: %w", err)
	}

	return &GenerateForecastOutput{Predictions: predictions}, nil
}
