package store

import (
	"context"

	"github.com/matchdesk/league-console/internal/domain/city"
)

// FetchCities loads the full city list. Cities have no parent, so the
// whole collection lives under the all scope.
func (s *Store) FetchCities(ctx context.Context) error {
	scope := AllScope()
	seq := s.Cities.beginFetch(scope)

	items, err := s.client.ListCities(ctx)
	if err != nil {
		s.Cities.failFetch(scope, seq, err)
		s.logger.ErrorContext(ctx, "fetch cities failed", "error", err)
		return err
	}

	s.Cities.completeFetch(scope, seq, items)
	return nil
}

func (s *Store) CreateCity(ctx context.Context, in city.City) (city.City, error) {
	if err := in.Validate(); err != nil {
		return city.City{}, err
	}

	created, err := s.client.CreateCity(ctx, in)
	if err != nil {
		return city.City{}, err
	}

	s.Cities.insert(created)
	return created, nil
}

func (s *Store) UpdateCity(ctx context.Context, id string, in city.City) (city.City, error) {
	if err := in.Validate(); err != nil {
		return city.City{}, err
	}

	updated, err := s.client.UpdateCity(ctx, id, in)
	if err != nil {
		return city.City{}, err
	}

	s.Cities.apply(id, func(city.City) city.City { return updated })
	return updated, nil
}

func (s *Store) DeleteCity(ctx context.Context, id string) error {
	if err := s.client.DeleteCity(ctx, id); err != nil {
		return err
	}

	s.Cities.remove(id)
	s.dropCityDependents(id)
	return nil
}

// dropCityDependents evicts cached children of a deleted city so stale
// scopes do not linger. The server cascades the real delete.
func (s *Store) dropCityDependents(cityID string) {
	for _, l := range s.Leagues.ByScope(ForParent(cityID)) {
		s.Leagues.remove(l.ID)
	}
	for _, sea := range s.Seasons.ByScope(ForParent(cityID)) {
		for _, t := range s.Tours.ByScope(ForParent(sea.ID)) {
			s.Tours.remove(t.ID)
		}
		s.Seasons.remove(sea.ID)
	}
	for _, c := range s.Cups.ByScope(ForParent(cityID)) {
		for _, g := range s.CupGroups.ByScope(ForParent(c.ID)) {
			s.CupGroups.remove(g.ID)
		}
		s.Cups.remove(c.ID)
	}
	for _, t := range s.Teams.ByScope(ForParent(cityID)) {
		for _, p := range s.Players.ByScope(ForParent(t.ID)) {
			s.Players.remove(p.ID)
		}
		s.Teams.remove(t.ID)
	}
}
