package services

import (
	"fmt"

	"github.com/google/uuid"

	"car-integration/models"
	"car-integration/utils"
)

// Pipeline runs aggregation, normalization and integration in order.
type Pipeline struct {
	logger     *utils.Logger
	aggregator *Aggregator
	normalizer *Normalizer
	integrator *Integrator
}

// NewPipeline creates a Pipeline whose stages share the given logger.
func NewPipeline(logger *utils.Logger) *Pipeline {
	return &Pipeline{
		logger:     logger,
		aggregator: NewAggregator(logger),
		normalizer: NewNormalizer(logger),
		integrator: NewIntegrator(logger),
	}
}

// Run processes the full set of raw rows. On error no stage output is returned.
func (p *Pipeline) Run(rows []*models.RawRow) (*models.Result, error) {
	runID := uuid.NewString()
	p.logger.Info("[pipeline] Run %s: %d raw rows", runID, len(rows))

	aggregated, err := p.aggregator.Aggregate(rows)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	normalized := p.normalizer.Normalize(aggregated)
	integrated := p.integrator.Integrate(normalized)

	return &models.Result{
		RunID:      runID,
		RawRows:    len(rows),
		Aggregated: aggregated,
		Normalized: normalized,
		Integrated: integrated,
	}, nil
}
