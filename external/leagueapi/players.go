package leagueapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/matchdesk/league-console/internal/domain/player"
	"github.com/matchdesk/league-console/internal/domain/sport"
)

type playersEnvelope struct {
	Players []player.Player `json:"players"`
}

type profilesEnvelope struct {
	Profiles []player.Profile `json:"profiles"`
}

type PlayerQuery struct {
	TeamID   string
	SeasonID string
}

func (c *Client) ListPlayers(ctx context.Context, q PlayerQuery) ([]player.Player, error) {
	query := url.Values{}
	if q.TeamID != "" {
		query.Set("teamId", q.TeamID)
	}
	if q.SeasonID != "" {
		query.Set("seasonId", q.SeasonID)
	}

	var env playersEnvelope
	if err := c.getJSON(ctx, "/players", query, &env); err != nil {
		return nil, err
	}
	return env.Players, nil
}

func (c *Client) CreatePlayer(ctx context.Context, in player.Player) (player.Player, error) {
	var out player.Player
	if err := c.send(ctx, http.MethodPost, "/players", nil, in, &out); err != nil {
		return player.Player{}, err
	}
	return out, nil
}

func (c *Client) UpdatePlayer(ctx context.Context, id string, in player.Player) error {
	return c.send(ctx, http.MethodPut, "/players/"+url.PathEscape(id), nil, in, nil)
}

func (c *Client) DeletePlayer(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/players/"+url.PathEscape(id), nil, nil, nil)
}

// Profiles live under /players/profiles and are sport-scoped.

func (c *Client) ListProfiles(ctx context.Context, sportType sport.Type) ([]player.Profile, error) {
	query := url.Values{}
	if sportType != "" {
		query.Set("sportType", sportType.String())
	}

	var env profilesEnvelope
	if err := c.getJSON(ctx, "/players/profiles", query, &env); err != nil {
		return nil, err
	}
	return env.Profiles, nil
}

func (c *Client) CreateProfile(ctx context.Context, in player.Profile) (player.Profile, error) {
	var out player.Profile
	if err := c.send(ctx, http.MethodPost, "/players/profiles", nil, in, &out); err != nil {
		return player.Profile{}, err
	}
	return out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, id string, in player.Profile) error {
	return c.send(ctx, http.MethodPut, "/players/profiles/"+url.PathEscape(id), nil, in, nil)
}

func (c *Client) DeleteProfile(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/players/profiles/"+url.PathEscape(id), nil, nil, nil)
}
