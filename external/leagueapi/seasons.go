package leagueapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/matchdesk/league-console/internal/domain/season"
)

type seasonsEnvelope struct {
	Seasons []season.Season `json:"seasons"`
}

type toursEnvelope struct {
	Tours []season.Tour `json:"tours"`
}

// ListSeasons requires a city id, same as leagues: no unscoped endpoint
// exists and "all cities" fans out per city.
func (c *Client) ListSeasons(ctx context.Context, cityID string) ([]season.Season, error) {
	query := url.Values{}
	if cityID != "" {
		query.Set("cityId", cityID)
	}

	var env seasonsEnvelope
	if err := c.getJSON(ctx, "/seasons", query, &env); err != nil {
		return nil, err
	}
	return env.Seasons, nil
}

func (c *Client) CreateSeason(ctx context.Context, in season.Season) (season.Season, error) {
	var out season.Season
	if err := c.send(ctx, http.MethodPost, "/seasons", nil, in, &out); err != nil {
		return season.Season{}, err
	}
	return out, nil
}

func (c *Client) UpdateSeason(ctx context.Context, id string, in season.Season) (season.Season, error) {
	var out season.Season
	if err := c.send(ctx, http.MethodPut, "/seasons/"+url.PathEscape(id), nil, in, &out); err != nil {
		return season.Season{}, err
	}
	return out, nil
}

func (c *Client) ListTours(ctx context.Context, seasonID string) ([]season.Tour, error) {
	var env toursEnvelope
	if err := c.getJSON(ctx, "/seasons/"+url.PathEscape(seasonID)+"/tours", nil, &env); err != nil {
		return nil, err
	}
	return env.Tours, nil
}

func (c *Client) CreateTour(ctx context.Context, seasonID string, in season.Tour) (season.Tour, error) {
	var out season.Tour
	if err := c.send(ctx, http.MethodPost, "/seasons/"+url.PathEscape(seasonID)+"/tours", nil, in, &out); err != nil {
		return season.Tour{}, err
	}
	return out, nil
}

// Tour update and delete answer 204; the cache applies the payload.
func (c *Client) UpdateTour(ctx context.Context, tourID string, in season.Tour) error {
	return c.send(ctx, http.MethodPut, "/seasons/tours/"+url.PathEscape(tourID), nil, in, nil)
}

func (c *Client) DeleteTour(ctx context.Context, tourID string) error {
	return c.send(ctx, http.MethodDelete, "/seasons/tours/"+url.PathEscape(tourID), nil, nil, nil)
}

func (c *Client) CreateMatch(ctx context.Context, tourID string, in season.Match) (season.Match, error) {
	var out season.Match
	if err := c.send(ctx, http.MethodPost, "/seasons/tours/"+url.PathEscape(tourID)+"/matches", nil, in, &out); err != nil {
		return season.Match{}, err
	}
	return out, nil
}

func (c *Client) UpdateMatch(ctx context.Context, matchID string, in season.Match) error {
	return c.send(ctx, http.MethodPut, "/seasons/matches/"+url.PathEscape(matchID), nil, in, nil)
}

func (c *Client) DeleteMatch(ctx context.Context, matchID string) error {
	return c.send(ctx, http.MethodDelete, "/seasons/matches/"+url.PathEscape(matchID), nil, nil, nil)
}
