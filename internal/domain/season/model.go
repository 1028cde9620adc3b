package season

import (
	"fmt"

	"github.com/matchdesk/league-console/internal/domain/sport"
)

// Season is one playing period of a league within a city. It owns an
// ordered list of tours, fetched separately.
type Season struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	CityID   string `json:"cityId"`
	CityName string `json:"cityName,omitempty"`
	LeagueID string `json:"leagueId"`
	Date     string `json:"date,omitempty"`
	Order    int    `json:"order"`
}

func (s Season) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("season name is required")
	}
	if s.CityID == "" {
		return fmt.Errorf("season city id is required")
	}
	if s.LeagueID == "" {
		return fmt.Errorf("season league id is required")
	}

	return nil
}

// Tour is a scheduled round within a season containing zero or more
// matches. Matches arrive embedded in the tours list response.
type Tour struct {
	ID        string  `json:"id"`
	SeasonID  string  `json:"seasonId"`
	Number    int     `json:"number"`
	Name      string  `json:"name,omitempty"`
	StartDate string  `json:"startDate,omitempty"`
	EndDate   string  `json:"endDate,omitempty"`
	Matches   []Match `json:"matches,omitempty"`
}

func (t Tour) Validate() error {
	if t.SeasonID == "" {
		return fmt.Errorf("tour season id is required")
	}
	if t.Number <= 0 {
		return fmt.Errorf("tour number must be greater than zero")
	}

	return nil
}

// SetScore is one set of a volleyball fixture. At most three sets are
// recorded.
type SetScore struct {
	Set    int `json:"set"`
	Score1 int `json:"score1"`
	Score2 int `json:"score2"`
}

type Match struct {
	ID        string     `json:"id"`
	TourID    string     `json:"tourId"`
	DateTime  string     `json:"dateTime,omitempty"`
	Location  string     `json:"location,omitempty"`
	Team1ID   string     `json:"team1Id"`
	Team2ID   string     `json:"team2Id"`
	Score1    *int       `json:"score1,omitempty"`
	Score2    *int       `json:"score2,omitempty"`
	SetScores []SetScore `json:"setScores,omitempty"`
	Sport     sport.Type `json:"sportType,omitempty"`
}

func (m Match) Validate() error {
	if m.Team1ID == "" || m.Team2ID == "" {
		return fmt.Errorf("match requires both team ids")
	}
	if m.Team1ID == m.Team2ID {
		return fmt.Errorf("match teams must differ")
	}
	if len(m.SetScores) > 3 {
		return fmt.Errorf("match carries at most three set scores")
	}

	return nil
}
