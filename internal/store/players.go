package store

import (
	"context"

	"github.com/matchdesk/league-console/external/leagueapi"
	"github.com/matchdesk/league-console/internal/domain/player"
	"github.com/matchdesk/league-console/internal/domain/sport"
)

// FetchPlayers loads one team's roster, optionally narrowed to a
// season's registration.
func (s *Store) FetchPlayers(ctx context.Context, teamID, seasonID string) error {
	scope := ForParent(teamID)
	seq := s.Players.beginFetch(scope)

	items, err := s.client.ListPlayers(ctx, leagueapi.PlayerQuery{TeamID: teamID, SeasonID: seasonID})
	if err != nil {
		s.Players.failFetch(scope, seq, err)
		s.logger.ErrorContext(ctx, "fetch players failed", "team_id", teamID, "error", err)
		return err
	}

	s.Players.completeFetch(scope, seq, items)
	return nil
}

func (s *Store) CreatePlayer(ctx context.Context, in player.Player) (player.Player, error) {
	created, err := s.client.CreatePlayer(ctx, in)
	if err != nil {
		return player.Player{}, err
	}
	if created.TeamID == "" {
		created.TeamID = in.TeamID
	}

	s.Players.insert(created)
	return created, nil
}

func (s *Store) UpdatePlayer(ctx context.Context, id string, in player.Player) error {
	if err := s.client.UpdatePlayer(ctx, id, in); err != nil {
		return err
	}

	s.Players.apply(id, func(prev player.Player) player.Player {
		next := in
		next.ID = prev.ID
		next.TeamID = prev.TeamID
		if next.Name == "" {
			next.Name = prev.Name
		}
		return next
	})
	return nil
}

func (s *Store) DeletePlayer(ctx context.Context, id string) error {
	if err := s.client.DeletePlayer(ctx, id); err != nil {
		return err
	}

	s.Players.remove(id)
	return nil
}

// FetchProfiles loads the sport-wide identity pool players are drafted
// from.
func (s *Store) FetchProfiles(ctx context.Context, sportType sport.Type) error {
	scope := ProfileScope(sportType)
	seq := s.Profiles.beginFetch(scope)

	items, err := s.client.ListProfiles(ctx, sportType)
	if err != nil {
		s.Profiles.failFetch(scope, seq, err)
		s.logger.ErrorContext(ctx, "fetch profiles failed", "sport", sportType.String(), "error", err)
		return err
	}

	s.Profiles.completeFetch(scope, seq, items)
	return nil
}

func (s *Store) CreateProfile(ctx context.Context, in player.Profile) (player.Profile, error) {
	created, err := s.client.CreateProfile(ctx, in)
	if err != nil {
		return player.Profile{}, err
	}
	if created.Sport == "" {
		created.Sport = in.Sport
	}

	s.Profiles.insert(created)
	return created, nil
}

func (s *Store) UpdateProfile(ctx context.Context, id string, in player.Profile) error {
	if err := s.client.UpdateProfile(ctx, id, in); err != nil {
		return err
	}

	s.Profiles.apply(id, func(prev player.Profile) player.Profile {
		next := in
		next.ID = prev.ID
		if next.Sport == "" {
			next.Sport = prev.Sport
		}
		return next
	})
	return nil
}

func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	if err := s.client.DeleteProfile(ctx, id); err != nil {
		return err
	}

	s.Profiles.remove(id)
	return nil
}
