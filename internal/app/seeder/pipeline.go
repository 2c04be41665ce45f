package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// Phase names in execution order.
const (
	PhaseVillages = "villages"
	PhaseTypes    = "types"
	PhaseSpeakers = "speakers"
)

var allPhases = []string{PhaseVillages, PhaseTypes, PhaseSpeakers}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Upserted int
	Skipped  int
	Errors   int
	Duration time.Duration
	Err      error
}

// Deps bundles the pipeline collaborators.
type Deps struct {
	Villages VillageRepo
	Types    TypeRepo
	Speakers SpeakerRepo
	Geocoder Geocoder
	Tx       TxRunner
}

// Pipeline upserts a fixture in three phases inside one transaction.
// Geocoding happens before the transaction is opened.
type Pipeline struct {
	log     *slog.Logger
	deps    Deps
	cfg     Config
	results map[string]PhaseResult
}

func NewPipeline(log *slog.Logger, deps Deps, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log.With("component", "seeder"),
		deps:    deps,
		cfg:     cfg,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return maps.Clone(p.results)
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run seeds fx. Villages that cannot be located are skipped and counted as
// errors; speakers pointing at a skipped village are stored without one.
// Any repository failure rolls back the whole run.
func (p *Pipeline) Run(ctx context.Context, fx *Fixture) error {
	start := time.Now()
	villages, located := p.locateVillages(ctx, fx.Villages)
	locateTook := time.Since(start)

	if p.cfg.DryRun {
		p.results[PhaseVillages] = PhaseResult{Skipped: len(villages), Errors: located.Errors, Duration: locateTook}
		p.results[PhaseTypes] = PhaseResult{Skipped: len(fx.Types)}
		p.results[PhaseSpeakers] = PhaseResult{Skipped: len(fx.Speakers)}
		p.logResults()
		return nil
	}

	err := p.deps.Tx.RunInTx(ctx, func(ctx context.Context) error {
		ids, res, err := p.upsertVillages(ctx, villages)
		res.Errors += located.Errors
		res.Duration += locateTook
		p.results[PhaseVillages] = res
		if err != nil {
			return err
		}

		res, err = p.upsertTypes(ctx, fx.Types)
		p.results[PhaseTypes] = res
		if err != nil {
			return err
		}

		res, err = p.upsertSpeakers(ctx, fx.Speakers, ids)
		p.results[PhaseSpeakers] = res
		return err
	})

	p.logResults()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

func (p *Pipeline) locateVillages(ctx context.Context, seeds []VillageSeed) ([]domain.Village, PhaseResult) {
	var res PhaseResult
	out := make([]domain.Village, 0, len(seeds))

	for _, s := range seeds {
		v := domain.Village{
			Name:        strings.TrimSpace(s.Name),
			Description: s.Description,
		}
		if s.Latitude != nil && s.Longitude != nil {
			v.Latitude, v.Longitude = *s.Latitude, *s.Longitude
			out = append(out, v)
			continue
		}

		address := strings.TrimSpace(s.Address)
		if address == "" {
			address = p.cfg.AddressPrefix + v.Name
		}
		loc, ok := p.deps.Geocoder.Geocode(ctx, address)
		if !ok {
			p.log.WarnContext(ctx, "village not located",
				slog.String("village", v.Name),
				slog.String("address", address),
			)
			res.Errors++
			continue
		}
		v.Latitude, v.Longitude = loc.Lat, loc.Lon
		out = append(out, v)
	}
	return out, res
}

func (p *Pipeline) upsertVillages(ctx context.Context, villages []domain.Village) (map[string]int64, PhaseResult, error) {
	start := time.Now()
	var res PhaseResult
	ids := make(map[string]int64, len(villages))

	for _, v := range villages {
		saved, err := p.deps.Villages.Upsert(ctx, v)
		if err != nil {
			res.Err = err
			res.Duration = time.Since(start)
			return nil, res, fmt.Errorf("upsert village %q: %w", v.Name, err)
		}
		ids[saved.Name] = saved.ID
		res.Upserted++
	}
	res.Duration = time.Since(start)
	return ids, res, nil
}

func (p *Pipeline) upsertTypes(ctx context.Context, seeds []TypeSeed) (PhaseResult, error) {
	start := time.Now()
	var res PhaseResult

	for _, s := range seeds {
		t := domain.OnomatopoeiaType{
			TypeCode:    strings.TrimSpace(s.Code),
			TypeName:    strings.TrimSpace(s.Name),
			Description: s.Description,
		}
		if _, err := p.deps.Types.Upsert(ctx, t); err != nil {
			res.Err = err
			res.Duration = time.Since(start)
			return res, fmt.Errorf("upsert type %q: %w", t.TypeCode, err)
		}
		res.Upserted++
	}
	res.Duration = time.Since(start)
	return res, nil
}

func (p *Pipeline) upsertSpeakers(ctx context.Context, seeds []SpeakerSeed, villages map[string]int64) (PhaseResult, error) {
	start := time.Now()
	var res PhaseResult

	for _, s := range seeds {
		sp := domain.Speaker{
			SpeakerID:    strings.TrimSpace(s.SpeakerID),
			AgeRange:     domain.AgeRange(s.AgeRange),
			Gender:       domain.Gender(s.Gender),
			ConsentVideo: s.ConsentVideo,
			Notes:        s.Notes,
		}
		if name := strings.TrimSpace(s.Village); name != "" {
			if id, ok := villages[name]; ok {
				sp.VillageID = &id
			} else {
				p.log.WarnContext(ctx, "speaker village skipped",
					slog.String("speaker_id", sp.SpeakerID),
					slog.String("village", name),
				)
			}
		}
		if _, err := p.deps.Speakers.Upsert(ctx, sp); err != nil {
			res.Err = err
			res.Duration = time.Since(start)
			return res, fmt.Errorf("upsert speaker %q: %w", sp.SpeakerID, err)
		}
		res.Upserted++
	}
	res.Duration = time.Since(start)
	return res, nil
}

func (p *Pipeline) logResults() {
	for _, name := range allPhases {
		r, ok := p.results[name]
		if !ok {
			continue
		}
		attrs := []any{
			slog.String("phase", name),
			slog.Int("upserted", r.Upserted),
			slog.Int("skipped", r.Skipped),
			slog.Int("errors", r.Errors),
			slog.Duration("duration", r.Duration),
		}
		if r.Err != nil {
			attrs = append(attrs, slog.String("error", r.Err.Error()))
		}
		p.log.Info("phase complete", attrs...)
	}
}
