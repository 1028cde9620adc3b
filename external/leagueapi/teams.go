package leagueapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/matchdesk/league-console/internal/domain/sport"
	"github.com/matchdesk/league-console/internal/domain/team"
)

type teamsEnvelope struct {
	Teams []team.Team `json:"teams"`
}

// TeamQuery narrows the teams list. All fields optional; a zero query
// lists every team (the backend supports the unscoped call here).
type TeamQuery struct {
	CityID     string
	LeagueID   string
	Sport      sport.Type
	ExcludeCup bool
}

func (q TeamQuery) values() url.Values {
	query := url.Values{}
	if q.CityID != "" {
		query.Set("cityId", q.CityID)
	}
	if q.LeagueID != "" {
		query.Set("leagueId", q.LeagueID)
	}
	if q.Sport != "" {
		query.Set("sportType", q.Sport.String())
	}
	if q.ExcludeCup {
		query.Set("excludeCup", "true")
	}
	return query
}

func (c *Client) ListTeams(ctx context.Context, q TeamQuery) ([]team.Team, error) {
	var env teamsEnvelope
	if err := c.getJSON(ctx, "/teams", q.values(), &env); err != nil {
		return nil, err
	}
	return env.Teams, nil
}

func (c *Client) CreateTeam(ctx context.Context, in team.Team) (team.Team, error) {
	var out team.Team
	if err := c.send(ctx, http.MethodPost, "/teams", nil, in, &out); err != nil {
		return team.Team{}, err
	}
	return out, nil
}

func (c *Client) UpdateTeam(ctx context.Context, id string, in team.Team) error {
	return c.send(ctx, http.MethodPut, "/teams/"+url.PathEscape(id), nil, in, nil)
}

func (c *Client) DeleteTeam(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/teams/"+url.PathEscape(id), nil, nil, nil)
}
