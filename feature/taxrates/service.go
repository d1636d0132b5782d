package taxrates

import (
	"context"

	"taxsync/core/platform"
	"taxsync/feature/taxrates/cache"
	"taxsync/feature/taxrates/enrich"
	"taxsync/feature/taxrates/models"
	"taxsync/feature/taxrates/reconcile"
	"taxsync/feature/taxrates/source"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// phase is one step of the synchronization state machine.
type phase int

const (
	phaseCheckCache phase = iota
	phaseRefresh
	phaseReconcile
	phaseDone
)

// RunOptions are the per-run switches of one synchronization.
type RunOptions struct {
	// ForceRefresh skips the cache check and rebuilds the window.
	ForceRefresh bool
	// DryRun computes the instruction set without installing a cache window.
	DryRun bool
	// OverrideExempt rewrites exempt rates like any other for this run.
	OverrideExempt bool
}

// Result summarizes one synchronization run.
type Result struct {
	CacheHit  bool `json:"cache_hit"`
	Refreshed bool `json:"refreshed"`
	Records   int  `json:"records"`
	Creates   int  `json:"creates"`
	Updates   int  `json:"updates"`
	Deletes   int  `json:"deletes"`

	Instructions []models.SyncRecord `json:"instructions"`
}

// Service orchestrates enrichment, caching and reconciliation.
type Service struct {
	log      *zap.Logger
	provider source.Provider
	platform platform.Client
	cache    *cache.Manager
	pipeline *enrich.Pipeline
	opts     reconcile.Options
}

// NewService creates the synchronization service.
func NewService(log *zap.Logger, provider source.Provider, client platform.Client, cacheManager *cache.Manager, pipeline *enrich.Pipeline, opts reconcile.Options) *Service {
	return &Service{
		log:      log,
		provider: provider,
		platform: client,
		cache:    cacheManager,
		pipeline: pipeline,
		opts:     opts,
	}
}

// Sync runs one synchronization. The run is an explicit state machine:
// check the cache, refresh it on a miss (or when forced), then reconcile the
// window against the destination platform. Each phase runs at most once.
func (s *Service) Sync(ctx context.Context, run RunOptions) (*Result, error) {
	res := &Result{}
	var records []models.ExportRecord

	state := phaseCheckCache
	if run.ForceRefresh || run.DryRun {
		state = phaseRefresh
	}

	for state != phaseDone {
		switch state {
		case phaseCheckCache:
			recs, ok, err := s.cache.Current(ctx)
			if err != nil {
				return nil, err
			}
			if !ok {
				state = phaseRefresh
				continue
			}
			records = recs
			res.CacheHit = true
			state = phaseReconcile

		case phaseRefresh:
			var (
				recs []models.ExportRecord
				err  error
			)
			if run.DryRun {
				// No cache window is installed; the run leaves no trace.
				recs, err = s.buildWindow(ctx)
			} else {
				recs, err = s.cache.Refresh(ctx, s.buildWindow)
			}
			if err != nil {
				return nil, err
			}
			records = recs
			res.Refreshed = true
			state = phaseReconcile

		case phaseReconcile:
			instructions, err := s.reconcileRecords(ctx, records, run)
			if err != nil {
				return nil, err
			}
			res.Records = len(records)
			res.Instructions = instructions
			for _, ins := range instructions {
				switch ins.Action {
				case models.ActionCreate:
					res.Creates++
				case models.ActionUpdate:
					res.Updates++
				case models.ActionDelete:
					res.Deletes++
				}
			}
			state = phaseDone
		}
	}

	s.log.Info("Synchronization completed",
		zap.Bool("cache_hit", res.CacheHit),
		zap.Bool("refreshed", res.Refreshed),
		zap.Int("records", res.Records),
		zap.Int("creates", res.Creates),
		zap.Int("updates", res.Updates),
		zap.Int("deletes", res.Deletes))
	return res, nil
}

// buildWindow loads the export and the reference arena concurrently and runs
// the enrichment pipeline over them.
func (s *Service) buildWindow(ctx context.Context) ([]models.ExportRecord, error) {
	var (
		records []models.ExportRecord
		arena   *models.Arena
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.provider.ExportRecords(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		arena, err = source.LoadArena(gCtx, s.provider)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.pipeline.Run(ctx, records, arena)
}

// reconcileRecords loads the platform collections concurrently and diffs the
// window against them.
func (s *Service) reconcileRecords(ctx context.Context, records []models.ExportRecord, run RunOptions) ([]models.SyncRecord, error) {
	in := reconcile.Input{Records: records}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		in.Rates, err = s.platform.LoadTaxRates(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		in.Rules, err = s.platform.LoadTaxRules(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		in.Classes, err = s.platform.LoadTaxClasses(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		in.Countries, err = s.platform.LoadCountries(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	opts := s.opts
	if run.OverrideExempt {
		opts.OverrideExempt = true
	}
	return reconcile.New(s.log, opts).Diff(ctx, in)
}

// CacheStatus reports the active cache window, nil when none exists.
func (s *Service) CacheStatus(ctx context.Context) (*cache.Status, error) {
	return s.cache.Status(ctx)
}

// InvalidateCache drops the cache window and its snapshot.
func (s *Service) InvalidateCache(ctx context.Context) error {
	return s.cache.Invalidate(ctx)
}
