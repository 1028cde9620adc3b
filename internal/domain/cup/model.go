package cup

import (
	"fmt"

	"github.com/matchdesk/league-console/internal/domain/season"
	"github.com/matchdesk/league-console/internal/domain/sport"
)

// Cup is a knockout/group tournament, distinct from a league season.
type Cup struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CityID    string     `json:"cityId"`
	LeagueID  string     `json:"leagueId,omitempty"`
	Sport     sport.Type `json:"sportType"`
	StartDate string     `json:"startDate,omitempty"`
	EndDate   string     `json:"endDate,omitempty"`
}

func (c Cup) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("cup name is required")
	}
	if c.CityID == "" {
		return fmt.Errorf("cup city id is required")
	}
	if err := c.Sport.Validate(); err != nil {
		return fmt.Errorf("cup sport: %w", err)
	}

	return nil
}

// Group is a stage group inside a cup. Teams and Tours stay nil until
// the group is explicitly expanded; a populated-but-empty group carries
// non-nil empty slices.
type Group struct {
	ID    string      `json:"id"`
	CupID string      `json:"cupTournamentId"`
	Name  string      `json:"name"`
	Order int         `json:"order"`
	Teams []GroupTeam `json:"teams,omitempty"`
	Tours []Tour      `json:"tours,omitempty"`
}

func (g Group) Validate() error {
	if g.CupID == "" {
		return fmt.Errorf("cup group cup id is required")
	}
	if g.Name == "" {
		return fmt.Errorf("cup group name is required")
	}

	return nil
}

// Expanded reports whether the group's sub-lists have been fetched.
func (g Group) Expanded() bool {
	return g.Teams != nil || g.Tours != nil
}

// GroupTeam is the join entry between a cup group and a team.
type GroupTeam struct {
	TeamID string `json:"teamId"`
	Name   string `json:"teamName,omitempty"`
	Seed   int    `json:"seed,omitempty"`
}

// Tour is a single fixture between two teams within a cup group; the
// tour and its match are one entity here, unlike season tours.
type Tour struct {
	ID        string            `json:"id"`
	GroupID   string            `json:"groupId"`
	DateTime  string            `json:"dateTime,omitempty"`
	Location  string            `json:"location,omitempty"`
	Team1ID   string            `json:"team1Id"`
	Team2ID   string            `json:"team2Id"`
	Score1    *int              `json:"score1,omitempty"`
	Score2    *int              `json:"score2,omitempty"`
	SetScores []season.SetScore `json:"setScores,omitempty"`
}

func (t Tour) Validate() error {
	if t.Team1ID == "" || t.Team2ID == "" {
		return fmt.Errorf("cup tour requires both team ids")
	}
	if t.Team1ID == t.Team2ID {
		return fmt.Errorf("cup tour teams must differ")
	}
	if len(t.SetScores) > 3 {
		return fmt.Errorf("cup tour carries at most three set scores")
	}

	return nil
}
