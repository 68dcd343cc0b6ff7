// Package report serves aggregated healing views of stored encounters.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aevon-lab/healstats/internal/core/aggregation"
	"github.com/aevon-lab/healstats/internal/core/storage"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid report query")

// Service builds AggregatedStats for stored encounters and keeps recent ones warm.
type Service struct {
	store        storage.EncounterStore
	classifier   aggregation.SkillClassifier
	defaults     aggregation.Options
	debugDefault bool

	cache *statsCache
	group singleflight.Group
}

// NewService creates a report service. defaults must be valid aggregation options.
func NewService(
	store storage.EncounterStore,
	classifier aggregation.SkillClassifier,
	defaults aggregation.Options,
	debugDefault bool,
	cacheCapacity int,
) *Service {
	if store == nil {
		panic("report: store must not be nil")
	}
	if err := defaults.Validate(); err != nil {
		panic(fmt.Sprintf("report: invalid default options: %v", err))
	}
	return &Service{
		store:        store,
		classifier:   classifier,
		defaults:     defaults,
		debugDefault: debugDefault,
		cache:        newStatsCache(cacheCapacity),
	}
}

// Stats returns the view selected by the query's data source.
func (s *Service) Stats(ctx context.Context, encounterID string, q ViewQuery) (*StatsResponse, error) {
	stats, err := s.load(ctx, encounterID, q)
	if err != nil {
		return nil, err
	}
	source := stats.Options().DataSource
	return statsResponse(encounterID, source.String(), stats, stats.GetStats(source)), nil
}

// Details returns the drill-down of one row of the query's data source.
func (s *Service) Details(ctx context.Context, encounterID, rawID string, q ViewQuery) (*StatsResponse, error) {
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return nil, invalidQueryf("detail id %q is not an unsigned integer", rawID)
	}

	stats, err := s.load(ctx, encounterID, q)
	if err != nil {
		return nil, err
	}
	source := stats.Options().DataSource
	view := fmt.Sprintf("%s/%d", source.String(), id)
	return statsResponse(encounterID, view, stats, stats.GetDetails(source, id)), nil
}

// Total returns the single all-skills total row.
func (s *Service) Total(ctx context.Context, encounterID string, q ViewQuery) (*TotalResponse, error) {
	stats, err := s.load(ctx, encounterID, q)
	if err != nil {
		return nil, err
	}
	return &TotalResponse{
		EncounterID:       encounterID,
		CombatTimeSeconds: stats.GetCombatTime(),
		Total:             entryView(stats, *stats.GetTotal()),
	}, nil
}

// Groups returns the healing totals under each preset group filter.
func (s *Service) Groups(ctx context.Context, encounterID string, q ViewQuery) (*StatsResponse, error) {
	stats, err := s.load(ctx, encounterID, q)
	if err != nil {
		return nil, err
	}
	return statsResponse(encounterID, "groups", stats, stats.GetGroupFilterTotals()), nil
}

// resolve merges the query onto the configured defaults.
func (s *Service) resolve(q ViewQuery) (aggregation.Options, bool, error) {
	opts := s.defaults
	debug := s.debugDefault

	if q.SortOrder != "" {
		order, err := aggregation.ParseSortOrder(q.SortOrder)
		if err != nil {
			return opts, debug, invalidQueryf("%v", err)
		}
		opts.SortOrder = order
	}
	if q.DataSource != "" {
		source, err := aggregation.ParseDataSource(q.DataSource)
		if err != nil {
			return opts, debug, invalidQueryf("%v", err)
		}
		opts.DataSource = source
	}
	if q.CombatEndCondition != "" {
		cond, err := aggregation.ParseCombatEndCondition(q.CombatEndCondition)
		if err != nil {
			return opts, debug, invalidQueryf("%v", err)
		}
		opts.CombatEndCondition = cond
	}

	overrides := []struct {
		value  *bool
		target *bool
	}{
		{q.ExcludeGroup, &opts.ExcludeGroup},
		{q.ExcludeOffGroup, &opts.ExcludeOffGroup},
		{q.ExcludeOffSquad, &opts.ExcludeOffSquad},
		{q.ExcludeMinions, &opts.ExcludeMinions},
		{q.ExcludeUnmapped, &opts.ExcludeUnmapped},
		{q.Debug, &debug},
	}
	for _, o := range overrides {
		if o.value != nil {
			*o.target = *o.value
		}
	}

	return opts, debug, nil
}

// load returns the cached stats for (encounter, options, debug), building them once
// even when many requests miss at the same time.
func (s *Service) load(ctx context.Context, encounterID string, q ViewQuery) (*aggregation.AggregatedStats, error) {
	opts, debug, err := s.resolve(q)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s|%s|debug=%t", encounterID, opts.Key(), debug)
	if stats := s.cache.Get(key); stats != nil {
		return stats, nil
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		if stats := s.cache.Get(key); stats != nil {
			return stats, nil
		}

		encounter, err := s.store.GetEncounter(ctx, encounterID)
		if err != nil {
			return nil, err
		}

		stats := aggregation.NewAggregatedStats(encounter.Snapshot(), opts, s.classifier, debug)
		s.cache.Put(key, stats)

		slog.Debug("Built aggregated stats",
			"encounter_id", encounterID,
			"options", opts.Key(),
			"debug", debug,
			"cached", s.cache.Len())
		return stats, nil
	})
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			err = fmt.Errorf("load encounter %s: %w", encounterID, err)
		}
		return nil, err
	}
	if shared {
		slog.Debug("Shared aggregated stats build", "encounter_id", encounterID)
	}

	return v.(*aggregation.AggregatedStats), nil
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
