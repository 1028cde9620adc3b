package store

import (
	"context"

	crerr "github.com/cockroachdb/errors"

	"github.com/matchdesk/league-console/internal/domain/season"
)

// FetchSeasons loads one city's seasons. Like leagues, seasons have no
// unscoped endpoint; Refresh handles the all-cities case.
func (s *Store) FetchSeasons(ctx context.Context, scope Scope) error {
	if scope.IsAll() {
		return crerr.New("seasons fetch requires a city scope; use Refresh for all cities")
	}

	seq := s.Seasons.beginFetch(scope)

	items, err := s.client.ListSeasons(ctx, scope.Parent())
	if err != nil {
		s.Seasons.failFetch(scope, seq, err)
		s.logger.ErrorContext(ctx, "fetch seasons failed", "city_id", scope.Parent(), "error", err)
		return err
	}

	s.Seasons.completeFetch(scope, seq, items)
	return nil
}

func (s *Store) CreateSeason(ctx context.Context, in season.Season) (season.Season, error) {
	if err := in.Validate(); err != nil {
		return season.Season{}, err
	}

	created, err := s.client.CreateSeason(ctx, in)
	if err != nil {
		return season.Season{}, err
	}

	s.Seasons.insert(created)
	return created, nil
}

func (s *Store) UpdateSeason(ctx context.Context, id string, in season.Season) (season.Season, error) {
	if err := in.Validate(); err != nil {
		return season.Season{}, err
	}

	updated, err := s.client.UpdateSeason(ctx, id, in)
	if err != nil {
		return season.Season{}, err
	}

	s.Seasons.apply(id, func(season.Season) season.Season { return updated })
	return updated, nil
}

// FetchTours loads one season's tours, matches embedded.
func (s *Store) FetchTours(ctx context.Context, seasonID string) error {
	scope := ForParent(seasonID)
	seq := s.Tours.beginFetch(scope)

	items, err := s.client.ListTours(ctx, seasonID)
	if err != nil {
		s.Tours.failFetch(scope, seq, err)
		s.logger.ErrorContext(ctx, "fetch tours failed", "season_id", seasonID, "error", err)
		return err
	}

	s.Tours.completeFetch(scope, seq, items)
	return nil
}

func (s *Store) CreateTour(ctx context.Context, seasonID string, in season.Tour) (season.Tour, error) {
	in.SeasonID = seasonID
	if err := in.Validate(); err != nil {
		return season.Tour{}, err
	}

	created, err := s.client.CreateTour(ctx, seasonID, in)
	if err != nil {
		return season.Tour{}, err
	}
	if created.SeasonID == "" {
		created.SeasonID = seasonID
	}

	s.Tours.insert(created)
	return created, nil
}

// UpdateTour merges the payload optimistically (204 endpoint) while
// keeping the cached match list, which the payload never carries.
func (s *Store) UpdateTour(ctx context.Context, tourID string, in season.Tour) error {
	if err := s.client.UpdateTour(ctx, tourID, in); err != nil {
		return err
	}

	s.Tours.apply(tourID, func(prev season.Tour) season.Tour {
		next := in
		next.ID = prev.ID
		next.SeasonID = prev.SeasonID
		next.Matches = prev.Matches
		return next
	})
	return nil
}

func (s *Store) DeleteTour(ctx context.Context, tourID string) error {
	if err := s.client.DeleteTour(ctx, tourID); err != nil {
		return err
	}

	s.Tours.remove(tourID)
	return nil
}

func (s *Store) CreateMatch(ctx context.Context, tourID string, in season.Match) (season.Match, error) {
	in.TourID = tourID
	if err := in.Validate(); err != nil {
		return season.Match{}, err
	}

	created, err := s.client.CreateMatch(ctx, tourID, in)
	if err != nil {
		return season.Match{}, err
	}
	if created.TourID == "" {
		created.TourID = tourID
	}

	s.Tours.apply(tourID, func(prev season.Tour) season.Tour {
		next := prev
		next.Matches = append(append([]season.Match(nil), prev.Matches...), created)
		return next
	})
	return created, nil
}

// UpdateMatch rewrites the match inside its owning tour's embedded
// list; the endpoint answers 204, so the payload is the new truth.
func (s *Store) UpdateMatch(ctx context.Context, matchID string, in season.Match) error {
	if err := s.client.UpdateMatch(ctx, matchID, in); err != nil {
		return err
	}

	tourID, ok := s.tourOfMatch(matchID)
	if !ok {
		return nil
	}
	s.Tours.apply(tourID, func(prev season.Tour) season.Tour {
		next := prev
		next.Matches = append([]season.Match(nil), prev.Matches...)
		for idx, m := range next.Matches {
			if m.ID != matchID {
				continue
			}
			merged := in
			merged.ID = m.ID
			merged.TourID = m.TourID
			next.Matches[idx] = merged
			break
		}
		return next
	})
	return nil
}

func (s *Store) DeleteMatch(ctx context.Context, matchID string) error {
	if err := s.client.DeleteMatch(ctx, matchID); err != nil {
		return err
	}

	tourID, ok := s.tourOfMatch(matchID)
	if !ok {
		return nil
	}
	s.Tours.apply(tourID, func(prev season.Tour) season.Tour {
		next := prev
		next.Matches = make([]season.Match, 0, len(prev.Matches))
		for _, m := range prev.Matches {
			if m.ID != matchID {
				next.Matches = append(next.Matches, m)
			}
		}
		return next
	})
	return nil
}

func (s *Store) tourOfMatch(matchID string) (string, bool) {
	for _, t := range s.Tours.All() {
		for _, m := range t.Matches {
			if m.ID == matchID {
				return t.ID, true
			}
		}
	}
	return "", false
}
