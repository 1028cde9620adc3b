package store

import (
	"context"

	crerr "github.com/cockroachdb/errors"

	"github.com/matchdesk/league-console/internal/domain/league"
	"github.com/matchdesk/league-console/internal/domain/sport"
)

// FetchLeagues loads one city's leagues. There is no unscoped league
// endpoint; loading every city's leagues goes through Refresh, which
// fans out per city.
func (s *Store) FetchLeagues(ctx context.Context, scope Scope) error {
	if scope.IsAll() {
		return crerr.New("leagues fetch requires a city scope; use Refresh for all cities")
	}

	seq := s.Leagues.beginFetch(scope)

	items, err := s.client.ListLeagues(ctx, scope.Parent())
	if err != nil {
		s.Leagues.failFetch(scope, seq, err)
		s.logger.ErrorContext(ctx, "fetch leagues failed", "city_id", scope.Parent(), "error", err)
		return err
	}

	s.Leagues.completeFetch(scope, seq, items)
	return nil
}

func (s *Store) CreateLeague(ctx context.Context, in league.League) (league.League, error) {
	if err := in.Validate(); err != nil {
		return league.League{}, err
	}

	created, err := s.client.CreateLeague(ctx, in)
	if err != nil {
		return league.League{}, err
	}

	s.Leagues.insert(created)
	return created, nil
}

// UpdateLeague applies the request payload to the cache optimistically:
// the endpoint answers 204 with no body, and the server accepts exactly
// what was sent.
func (s *Store) UpdateLeague(ctx context.Context, id string, in league.League) error {
	if err := in.Validate(); err != nil {
		return err
	}

	if err := s.client.UpdateLeague(ctx, id, in); err != nil {
		return err
	}

	s.Leagues.apply(id, func(prev league.League) league.League {
		next := in
		next.ID = prev.ID
		if next.CityName == "" {
			next.CityName = prev.CityName
		}
		return next
	})
	return nil
}

func (s *Store) DeleteLeague(ctx context.Context, id string) error {
	if err := s.client.DeleteLeague(ctx, id); err != nil {
		return err
	}

	s.Leagues.remove(id)
	return nil
}

// FetchLeagueGroups loads the division groups for one city and sport.
func (s *Store) FetchLeagueGroups(ctx context.Context, cityID string, sportType sport.Type) error {
	scope := LeagueGroupScope(cityID, sportType)
	seq := s.LeagueGroups.beginFetch(scope)

	items, err := s.client.ListLeagueGroups(ctx, cityID, sportType)
	if err != nil {
		s.LeagueGroups.failFetch(scope, seq, err)
		s.logger.ErrorContext(ctx, "fetch league groups failed", "city_id", cityID, "sport", sportType.String(), "error", err)
		return err
	}

	s.LeagueGroups.completeFetch(scope, seq, items)
	return nil
}
