package reconcile

import (
	"context"
	"fmt"
	"strings"

	"taxsync/core/parallel"
	"taxsync/core/platform"
	"taxsync/feature/taxrates/models"
	"taxsync/feature/taxrates/region"

	"go.uber.org/zap"
)

// Options controls reconciliation behavior.
type Options struct {
	// ExemptTaxCode marks platform tax classes whose rates are preserved.
	// Empty disables the exemption check.
	ExemptTaxCode string
	// OverrideExempt rewrites exempt rates like any other when true.
	OverrideExempt bool
	// DestinationServerID is stamped on every produced instruction.
	DestinationServerID int
}

// Input bundles the collections one diff runs over. All collections are
// treated as read-only snapshots.
type Input struct {
	Rates     []platform.TaxRate
	Rules     []platform.TaxRule
	Classes   []platform.TaxClass
	Countries []platform.Country
	Records   []models.ExportRecord
}

// Engine computes synchronization instruction sets.
type Engine struct {
	log  *zap.Logger
	opts Options
}

// New creates a reconciliation engine.
func New(log *zap.Logger, opts Options) *Engine {
	return &Engine{log: log, opts: opts}
}

// candidate is an export record together with its resolved destination region.
type candidate struct {
	rec    models.ExportRecord
	region region.Descriptor
}

// placement marks one jurisdiction as already handled by the first pass.
type placement struct {
	country string
	region  string
	postal  string
}

// rateOutcome is the first-pass result for a single destination rate.
type rateOutcome struct {
	records    []models.SyncRecord
	placements []placement
}

// Diff produces the synchronization record set for the given snapshot.
// The order of the returned records is unspecified; callers must treat the
// result as an unordered collection.
func (e *Engine) Diff(ctx context.Context, in Input) ([]models.SyncRecord, error) {
	// Resolve every export record once. Records whose region cannot be
	// resolved are not actionable on the destination; they are only counted
	// so deletions in their country can be flagged.
	var candidates []candidate
	unresolved := make(map[string]int)
	for _, rec := range in.Records {
		d, ok := region.Resolve(rec, in.Countries)
		if !ok {
			unresolved[strings.ToUpper(strings.TrimSpace(rec.CountryCode))]++
			continue
		}
		candidates = append(candidates, candidate{rec: rec, region: d})
	}

	if len(in.Rates) == 0 {
		// Nothing on the destination yet: everything resolvable is a create.
		return parallel.Map(ctx, candidates, func(_ context.Context, c candidate) (models.SyncRecord, bool, error) {
			return e.createRecord(c), true, nil
		})
	}

	isExempt := exemptRateCheck(in, e.opts)
	countryISO := make(map[int]string, len(in.Countries))
	for _, c := range in.Countries {
		countryISO[c.ID] = c.ISO2
	}

	outcomes, err := parallel.Map(ctx, in.Rates, func(_ context.Context, rate platform.TaxRate) (rateOutcome, bool, error) {
		return e.diffRate(rate, candidates, isExempt, countryISO, unresolved), true, nil
	})
	if err != nil {
		return nil, err
	}

	var records []models.SyncRecord
	var placements []placement
	for _, o := range outcomes {
		records = append(records, o.records...)
		placements = append(placements, o.placements...)
	}

	// Second pass: create a rate for every jurisdiction the destination has
	// never seen.
	creates, err := parallel.Map(ctx, candidates, func(_ context.Context, c candidate) (models.SyncRecord, bool, error) {
		if placed(c, placements) {
			return models.SyncRecord{}, false, nil
		}
		return e.createRecord(c), true, nil
	})
	if err != nil {
		return nil, err
	}

	return append(records, creates...), nil
}

// diffRate decides the fate of one existing destination rate.
func (e *Engine) diffRate(rate platform.TaxRate, candidates []candidate, isExempt func(platform.TaxRate) bool, countryISO map[int]string, unresolved map[string]int) rateOutcome {
	var out rateOutcome
	iso2 := countryISO[rate.CountryID]

	// Filter to candidates sharing the rate's country, via resolver codes.
	var cands []candidate
	for _, c := range candidates {
		if iso2 != "" && strings.EqualFold(c.region.CountryISO2, iso2) {
			cands = append(cands, c)
		}
	}

	if isExempt(rate) && !e.opts.OverrideExempt {
		// Exempt rates are never rewritten; their matching candidates still
		// count as placed so the second pass does not duplicate them.
		for _, c := range scopeCandidates(rate, cands) {
			out.placements = append(out.placements, placementFromCandidate(c))
		}
		return out
	}

	if len(cands) == 0 {
		if unresolved[strings.ToUpper(iso2)] > 0 {
			// Deleting here would strand the jurisdiction: the export has
			// records for this country but none of them resolved a region.
			e.log.Warn("Preserving destination rate with unresolvable export records",
				zap.Int("rate_id", rate.ID),
				zap.String("country", iso2),
				zap.Int("unresolved_records", unresolved[strings.ToUpper(iso2)]))
			return out
		}
		// Orphan: the legacy system no longer exports this country at all.
		out.records = append(out.records, e.deleteRecord(rate))
		return out
	}

	if rate.RegionCode == "" {
		// Country-wide rate.
		if len(cands) == 1 {
			e.diffSingle(&out, rate, cands[0])
		} else {
			// Ambiguous: the legacy system has since split this country into
			// narrower records; the second pass recreates them.
			out.records = append(out.records, e.deleteRecord(rate))
		}
		return out
	}

	var rcands []candidate
	for _, c := range cands {
		if strings.EqualFold(c.region.Code, rate.RegionCode) {
			rcands = append(rcands, c)
		}
	}
	if len(rcands) == 0 {
		out.records = append(out.records, e.deleteRecord(rate))
		return out
	}

	if wildcardPostal(rate.PostalCode) {
		if len(rcands) == 1 {
			e.diffSingle(&out, rate, rcands[0])
		} else {
			out.records = append(out.records, e.deleteRecord(rate))
		}
		return out
	}

	// Specific postal code: match candidates by postal equality.
	for _, c := range rcands {
		if strings.EqualFold(c.rec.PostalCode, rate.PostalCode) {
			if !rate.Rate.Equal(c.rec.Rate) {
				updated := rate
				updated.Rate = c.rec.Rate
				out.records = append(out.records, models.SyncRecord{
					Action:              models.ActionUpdate,
					Rate:                updated,
					DestinationServerID: e.opts.DestinationServerID,
				})
			}
			out.placements = append(out.placements, placementFromCandidate(c))
			return out
		}
	}
	// No candidate postal code matches at all; the second pass recreates the
	// exported postal codes.
	out.records = append(out.records, e.deleteRecord(rate))
	return out
}

// diffSingle compares one rate against its single matching candidate.
func (e *Engine) diffSingle(out *rateOutcome, rate platform.TaxRate, c candidate) {
	switch {
	case wildcardPostal(rate.PostalCode) && !wildcardPostal(c.rec.PostalCode):
		// A wildcard getting specialized: copy the candidate's specific
		// postal code (and value) onto the destination rate.
		updated := rate
		updated.PostalCode = c.rec.PostalCode
		updated.Rate = c.rec.Rate
		out.records = append(out.records, models.SyncRecord{
			Action:              models.ActionUpdate,
			Rate:                updated,
			DestinationServerID: e.opts.DestinationServerID,
		})
	case !rate.Rate.Equal(c.rec.Rate):
		updated := rate
		updated.Rate = c.rec.Rate
		out.records = append(out.records, models.SyncRecord{
			Action:              models.ActionUpdate,
			Rate:                updated,
			DestinationServerID: e.opts.DestinationServerID,
		})
	}
	out.placements = append(out.placements, placementFromCandidate(c))
}

func (e *Engine) createRecord(c candidate) models.SyncRecord {
	regionCode := c.region.Code
	if regionCode == region.Wildcard {
		regionCode = ""
	}
	postal := strings.TrimSpace(c.rec.PostalCode)
	if postal == "" {
		postal = region.Wildcard
	}

	return models.SyncRecord{
		Action: models.ActionCreate,
		Rate: platform.TaxRate{
			Name:       rateName(c.region, postal),
			CountryID:  c.region.CountryID,
			RegionCode: regionCode,
			PostalCode: postal,
			Rate:       c.rec.Rate,
		},
		DestinationServerID: e.opts.DestinationServerID,
	}
}

func (e *Engine) deleteRecord(rate platform.TaxRate) models.SyncRecord {
	return models.SyncRecord{
		Action:              models.ActionDelete,
		Rate:                rate,
		DestinationServerID: e.opts.DestinationServerID,
	}
}

// placed reports whether the first pass already handled the candidate's
// jurisdiction, matched progressively by country, region code, then postal
// code, short-circuiting as soon as a more specific field is absent.
func placed(c candidate, placements []placement) bool {
	for _, p := range placements {
		if !strings.EqualFold(p.country, c.region.CountryISO2) {
			continue
		}
		if p.region == region.Wildcard || c.region.Code == region.Wildcard {
			return true
		}
		if !strings.EqualFold(p.region, c.region.Code) {
			continue
		}
		if p.postal == region.Wildcard || wildcardPostal(c.rec.PostalCode) {
			return true
		}
		if strings.EqualFold(p.postal, c.rec.PostalCode) {
			return true
		}
	}
	return false
}

// scopeCandidates narrows country candidates to the rate's region and, for a
// specific postal code, to the exact postal match.
func scopeCandidates(rate platform.TaxRate, cands []candidate) []candidate {
	var scoped []candidate
	for _, c := range cands {
		if rate.RegionCode != "" && !strings.EqualFold(c.region.Code, rate.RegionCode) {
			continue
		}
		if !wildcardPostal(rate.PostalCode) && !strings.EqualFold(c.rec.PostalCode, rate.PostalCode) {
			continue
		}
		scoped = append(scoped, c)
	}
	return scoped
}

// exemptRateCheck builds the predicate marking rates whose tax class equals
// the exempt marker, either directly or through a tax rule.
func exemptRateCheck(in Input, opts Options) func(platform.TaxRate) bool {
	if opts.ExemptTaxCode == "" {
		return func(platform.TaxRate) bool { return false }
	}

	classIDs := make(map[int]struct{})
	for _, cl := range in.Classes {
		if strings.EqualFold(cl.Name, opts.ExemptTaxCode) {
			classIDs[cl.ID] = struct{}{}
		}
	}
	rateIDs := make(map[int]struct{})
	for _, r := range in.Rules {
		if _, ok := classIDs[r.ClassID]; ok {
			rateIDs[r.TaxRateID] = struct{}{}
		}
	}

	return func(rate platform.TaxRate) bool {
		if _, ok := classIDs[rate.ClassID]; ok {
			return true
		}
		_, ok := rateIDs[rate.ID]
		return ok
	}
}

func placementFromCandidate(c candidate) placement {
	p := strings.TrimSpace(c.rec.PostalCode)
	if p == "" {
		p = region.Wildcard
	}
	return placement{
		country: strings.ToUpper(c.region.CountryISO2),
		region:  strings.ToUpper(c.region.Code),
		postal:  strings.ToUpper(p),
	}
}


func wildcardPostal(p string) bool {
	p = strings.TrimSpace(p)
	return p == "" || p == region.Wildcard
}

func rateName(d region.Descriptor, postal string) string {
	if d.Code == region.Wildcard {
		return fmt.Sprintf("%s %s", d.CountryISO2, postal)
	}
	return fmt.Sprintf("%s-%s %s", d.CountryISO2, d.Code, postal)
}
