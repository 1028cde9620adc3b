package leagueapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/matchdesk/league-console/internal/domain/city"
)

// Cities is the one resource whose list endpoint returns a bare array
// instead of an envelope.

func (c *Client) ListCities(ctx context.Context) ([]city.City, error) {
	var out []city.City
	if err := c.getJSON(ctx, "/cities", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCity(ctx context.Context, in city.City) (city.City, error) {
	var out city.City
	if err := c.send(ctx, http.MethodPost, "/cities", nil, in, &out); err != nil {
		return city.City{}, err
	}
	return out, nil
}

func (c *Client) UpdateCity(ctx context.Context, id string, in city.City) (city.City, error) {
	var out city.City
	if err := c.send(ctx, http.MethodPut, "/cities/"+url.PathEscape(id), nil, in, &out); err != nil {
		return city.City{}, err
	}
	return out, nil
}

func (c *Client) DeleteCity(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/cities/"+url.PathEscape(id), nil, nil, nil)
}
