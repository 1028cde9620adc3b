package store

import (
	"context"

	"github.com/matchdesk/league-console/external/leagueapi"
	"github.com/matchdesk/league-console/internal/domain/sport"
	"github.com/matchdesk/league-console/internal/domain/team"
)

// FetchTeams loads teams for one city, or every team at once under the
// all scope; unlike leagues the backend has a real unscoped endpoint.
// Sport narrows the unscoped call and is ignored for a city scope.
func (s *Store) FetchTeams(ctx context.Context, scope Scope, sportType sport.Type) error {
	seq := s.Teams.beginFetch(scope)

	q := leagueapi.TeamQuery{Sport: sportType}
	if !scope.IsAll() {
		q.CityID = scope.Parent()
		q.Sport = ""
	}
	items, err := s.client.ListTeams(ctx, q)
	if err != nil {
		s.Teams.failFetch(scope, seq, err)
		s.logger.ErrorContext(ctx, "fetch teams failed", "scope", scope.String(), "error", err)
		return err
	}

	s.Teams.completeFetch(scope, seq, items)
	return nil
}

func (s *Store) CreateTeam(ctx context.Context, in team.Team) (team.Team, error) {
	if err := in.Validate(); err != nil {
		return team.Team{}, err
	}

	created, err := s.client.CreateTeam(ctx, in)
	if err != nil {
		return team.Team{}, err
	}

	s.Teams.insert(created)
	return created, nil
}

// UpdateTeam is a 204 endpoint; the payload becomes the cached entity.
func (s *Store) UpdateTeam(ctx context.Context, id string, in team.Team) error {
	if err := in.Validate(); err != nil {
		return err
	}

	if err := s.client.UpdateTeam(ctx, id, in); err != nil {
		return err
	}

	s.Teams.apply(id, func(prev team.Team) team.Team {
		next := in
		next.ID = prev.ID
		return next
	})
	return nil
}

func (s *Store) DeleteTeam(ctx context.Context, id string) error {
	if err := s.client.DeleteTeam(ctx, id); err != nil {
		return err
	}

	for _, p := range s.Players.ByScope(ForParent(id)) {
		s.Players.remove(p.ID)
	}
	s.Teams.remove(id)
	return nil
}
