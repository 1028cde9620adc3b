package leagueapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/matchdesk/league-console/internal/domain/cup"
	"github.com/matchdesk/league-console/internal/domain/sport"
)

// Cup endpoints wrap their lists in a generic records envelope.
type cupsEnvelope struct {
	Records []cup.Cup `json:"records"`
}

type cupGroupsEnvelope struct {
	Records []cup.Group `json:"records"`
}

type CupQuery struct {
	CityID string
	Sport  sport.Type
}

func (c *Client) ListCups(ctx context.Context, q CupQuery) ([]cup.Cup, error) {
	query := url.Values{}
	if q.CityID != "" {
		query.Set("cityId", q.CityID)
	}
	if q.Sport != "" {
		query.Set("sportType", q.Sport.String())
	}

	var env cupsEnvelope
	if err := c.getJSON(ctx, "/cups", query, &env); err != nil {
		return nil, err
	}
	return env.Records, nil
}

func (c *Client) CreateCup(ctx context.Context, in cup.Cup) (cup.Cup, error) {
	var out cup.Cup
	if err := c.send(ctx, http.MethodPost, "/cups", nil, in, &out); err != nil {
		return cup.Cup{}, err
	}
	return out, nil
}

func (c *Client) UpdateCup(ctx context.Context, id string, in cup.Cup) (cup.Cup, error) {
	var out cup.Cup
	if err := c.send(ctx, http.MethodPut, "/cups/"+url.PathEscape(id), nil, in, &out); err != nil {
		return cup.Cup{}, err
	}
	return out, nil
}

func (c *Client) DeleteCup(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/cups/"+url.PathEscape(id), nil, nil, nil)
}

// ListCupGroups returns the groups without their teams/tours sub-lists;
// GetCupGroup fetches one group fully populated.
func (c *Client) ListCupGroups(ctx context.Context, cupID string) ([]cup.Group, error) {
	var env cupGroupsEnvelope
	if err := c.getJSON(ctx, "/cups/"+url.PathEscape(cupID)+"/groups", nil, &env); err != nil {
		return nil, err
	}
	return env.Records, nil
}

func (c *Client) GetCupGroup(ctx context.Context, cupID, groupID string) (cup.Group, error) {
	var out cup.Group
	path := "/cups/" + url.PathEscape(cupID) + "/groups/" + url.PathEscape(groupID)
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return cup.Group{}, err
	}
	return out, nil
}

func (c *Client) CreateCupGroup(ctx context.Context, cupID string, in cup.Group) (cup.Group, error) {
	var out cup.Group
	if err := c.send(ctx, http.MethodPost, "/cups/"+url.PathEscape(cupID)+"/groups", nil, in, &out); err != nil {
		return cup.Group{}, err
	}
	return out, nil
}

// UpdateCupGroup and DeleteCupGroup answer 204 No Content.
func (c *Client) UpdateCupGroup(ctx context.Context, cupID, groupID string, in cup.Group) error {
	path := "/cups/" + url.PathEscape(cupID) + "/groups/" + url.PathEscape(groupID)
	return c.send(ctx, http.MethodPut, path, nil, in, nil)
}

func (c *Client) DeleteCupGroup(ctx context.Context, cupID, groupID string) error {
	path := "/cups/" + url.PathEscape(cupID) + "/groups/" + url.PathEscape(groupID)
	return c.send(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) AddCupGroupTeam(ctx context.Context, cupID, groupID string, in cup.GroupTeam) (cup.GroupTeam, error) {
	var out cup.GroupTeam
	path := "/cups/" + url.PathEscape(cupID) + "/groups/" + url.PathEscape(groupID) + "/teams"
	if err := c.send(ctx, http.MethodPost, path, nil, in, &out); err != nil {
		return cup.GroupTeam{}, err
	}
	return out, nil
}

func (c *Client) RemoveCupGroupTeam(ctx context.Context, cupID, groupID, teamID string) error {
	path := "/cups/" + url.PathEscape(cupID) + "/groups/" + url.PathEscape(groupID) + "/teams/" + url.PathEscape(teamID)
	return c.send(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) CreateCupTour(ctx context.Context, cupID, groupID string, in cup.Tour) (cup.Tour, error) {
	var out cup.Tour
	path := "/cups/" + url.PathEscape(cupID) + "/groups/" + url.PathEscape(groupID) + "/tours"
	if err := c.send(ctx, http.MethodPost, path, nil, in, &out); err != nil {
		return cup.Tour{}, err
	}
	return out, nil
}

// Cup tour update and delete are addressed by tour id alone.
func (c *Client) UpdateCupTour(ctx context.Context, tourID string, in cup.Tour) error {
	return c.send(ctx, http.MethodPut, "/cups/tours/"+url.PathEscape(tourID), nil, in, nil)
}

func (c *Client) DeleteCupTour(ctx context.Context, tourID string) error {
	return c.send(ctx, http.MethodDelete, "/cups/tours/"+url.PathEscape(tourID), nil, nil, nil)
}
