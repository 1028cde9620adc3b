package leagueapi

import (
	"context"

	"github.com/matchdesk/league-console/internal/domain/user"
)

type usersEnvelope struct {
	Users []user.User `json:"users"`
}

func (c *Client) ListUsers(ctx context.Context) ([]user.User, error) {
	var env usersEnvelope
	if err := c.getJSON(ctx, "/users", nil, &env); err != nil {
		return nil, err
	}
	return env.Users, nil
}
