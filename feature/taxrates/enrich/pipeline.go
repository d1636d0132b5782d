package enrich

import (
	"context"
	"strings"

	"taxsync/feature/taxrates/models"

	"go.uber.org/zap"
)

// Pipeline runs the fix-up stages in order over an export snapshot.
type Pipeline struct {
	log              *zap.Logger
	defaultWarehouse string
	sourceServerID   int
}

// NewPipeline creates an enrichment pipeline.
// defaultWarehouse is the description of the fallback warehouse substituted
// when no reference entity provides one.
func NewPipeline(log *zap.Logger, defaultWarehouse string, sourceServerID int) *Pipeline {
	return &Pipeline{
		log:              log,
		defaultWarehouse: defaultWarehouse,
		sourceServerID:   sourceServerID,
	}
}

// Run repairs the export records against the reference arena and returns the
// enriched set. Output order is unspecified.
//
// Records without a postal code are dropped before the first stage; the
// postal code is the one key nothing downstream can recover from.
func (p *Pipeline) Run(ctx context.Context, records []models.ExportRecord, arena *models.Arena) ([]models.ExportRecord, error) {
	in := make([]models.ExportRecord, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.PostalCode) == "" {
			continue
		}
		in = append(in, rec)
	}
	dropped := len(records) - len(in)

	defaultID := arena.EnsureDefaultWarehouse(p.defaultWarehouse)

	out, err := FixCountries(ctx, in, arena)
	if err != nil {
		return nil, err
	}
	out, err = FixStates(ctx, out, arena)
	if err != nil {
		return nil, err
	}
	out, err = FixCounties(ctx, out, arena)
	if err != nil {
		return nil, err
	}
	out, err = FixCities(ctx, out, arena)
	if err != nil {
		return nil, err
	}
	out, err = FixWarehouses(ctx, out, arena, defaultID)
	if err != nil {
		return nil, err
	}

	for i := range out {
		out[i].SourceServerID = p.sourceServerID
	}

	p.log.Info("Enrichment completed",
		zap.Int("input", len(records)),
		zap.Int("output", len(out)),
		zap.Int("missing_postal_code", dropped),
		zap.Int("unresolved_state", len(in)-len(out)))

	return out, nil
}
