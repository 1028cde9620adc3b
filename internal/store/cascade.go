package store

import (
	"context"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/matchdesk/league-console/internal/domain/sport"
)

// Selection narrows a cascade refresh. Zero CityID means every city;
// zero Sport skips the sport-filtered collections (league groups,
// profiles) and leaves teams and cups unfiltered.
type Selection struct {
	CityID string
	Sport  sport.Type
}

// RefreshResult summarizes a cascade: how many dependent fetches ran
// and which failed. Partial failure is normal; failed scopes keep their
// stale data and carry a per-scope error for the UI.
type RefreshResult struct {
	Attempted int
	Failed    int
	Errors    []error
}

// Refresh runs the load cascade: cities first, then the dependent
// collections fanned out over a bounded worker pool. A cities failure
// is fatal since every downstream scope depends on the city list;
// dependent failures are collected, not propagated.
func (s *Store) Refresh(ctx context.Context, sel Selection) (RefreshResult, error) {
	var res RefreshResult

	if err := s.FetchCities(ctx); err != nil {
		return res, crerr.Wrap(err, "refresh: cities")
	}

	cityIDs := make([]string, 0)
	if sel.CityID != "" {
		cityIDs = append(cityIDs, sel.CityID)
	} else {
		for _, c := range s.Cities.ByScope(AllScope()) {
			cityIDs = append(cityIDs, c.ID)
		}
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return res, crerr.Wrap(err, "refresh: worker pool")
	}
	defer pool.Release()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	run := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			err := fn(ctx)
			mu.Lock()
			res.Attempted++
			if err != nil {
				res.Failed++
				res.Errors = append(res.Errors, crerr.Wrapf(err, "refresh: %s", name))
			}
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			res.Attempted++
			res.Failed++
			res.Errors = append(res.Errors, crerr.Wrapf(submitErr, "refresh: %s", name))
			mu.Unlock()
		}
	}

	for _, cityID := range cityIDs {
		cityID := cityID
		run("leagues "+cityID, func(ctx context.Context) error {
			return s.FetchLeagues(ctx, ForParent(cityID))
		})
		run("seasons "+cityID, func(ctx context.Context) error {
			return s.FetchSeasons(ctx, ForParent(cityID))
		})
		if sel.Sport != "" {
			run("league groups "+cityID, func(ctx context.Context) error {
				return s.FetchLeagueGroups(ctx, cityID, sel.Sport)
			})
		}
	}

	// Teams and cups have unscoped endpoints, so the all-cities case is
	// one call each instead of a per-city fan-out.
	if sel.CityID == "" {
		run("teams", func(ctx context.Context) error {
			return s.FetchTeams(ctx, AllScope(), sel.Sport)
		})
		run("cups", func(ctx context.Context) error {
			return s.FetchCups(ctx, AllScope(), sel.Sport)
		})
	} else {
		run("teams "+sel.CityID, func(ctx context.Context) error {
			return s.FetchTeams(ctx, ForParent(sel.CityID), sel.Sport)
		})
		run("cups "+sel.CityID, func(ctx context.Context) error {
			return s.FetchCups(ctx, ForParent(sel.CityID), sel.Sport)
		})
	}

	if sel.Sport != "" {
		run("profiles", func(ctx context.Context) error {
			return s.FetchProfiles(ctx, sel.Sport)
		})
	}

	wg.Wait()

	s.logger.InfoContext(ctx, "refresh cascade finished",
		"cities", len(cityIDs),
		"attempted", res.Attempted,
		"failed", res.Failed,
	)
	return res, nil
}
