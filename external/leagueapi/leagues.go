package leagueapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/matchdesk/league-console/internal/domain/league"
	"github.com/matchdesk/league-console/internal/domain/sport"
)

type leaguesEnvelope struct {
	Leagues []league.League `json:"leagues"`
}

type leagueGroupsEnvelope struct {
	LeagueGroups []league.Group `json:"leagueGroups"`
}

// ListLeagues requires a city id: the backend exposes no unscoped
// leagues endpoint, "all cities" views fan out one call per city.
func (c *Client) ListLeagues(ctx context.Context, cityID string) ([]league.League, error) {
	query := url.Values{}
	if cityID != "" {
		query.Set("cityId", cityID)
	}

	var env leaguesEnvelope
	if err := c.getJSON(ctx, "/leagues", query, &env); err != nil {
		return nil, err
	}
	return env.Leagues, nil
}

func (c *Client) CreateLeague(ctx context.Context, in league.League) (league.League, error) {
	var out league.League
	if err := c.send(ctx, http.MethodPost, "/leagues", nil, in, &out); err != nil {
		return league.League{}, err
	}
	return out, nil
}

// UpdateLeague returns no body; the caller applies the payload to its
// cache on success.
func (c *Client) UpdateLeague(ctx context.Context, id string, in league.League) error {
	return c.send(ctx, http.MethodPut, "/leagues/"+url.PathEscape(id), nil, in, nil)
}

func (c *Client) DeleteLeague(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/leagues/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ListLeagueGroups(ctx context.Context, cityID string, sportType sport.Type) ([]league.Group, error) {
	query := url.Values{}
	if cityID != "" {
		query.Set("cityId", cityID)
	}
	if sportType != "" {
		query.Set("sportType", sportType.String())
	}

	var env leagueGroupsEnvelope
	if err := c.getJSON(ctx, "/leagues/groups", query, &env); err != nil {
		return nil, err
	}
	return env.LeagueGroups, nil
}
