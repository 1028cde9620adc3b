package league

import (
	"fmt"

	"github.com/matchdesk/league-console/internal/domain/sport"
)

// League is a division within a city. Display order inside a city is
// driven by Order, not by name.
type League struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CityID    string     `json:"cityId"`
	CityName  string     `json:"cityName,omitempty"`
	GroupID   string     `json:"leagueGroupId,omitempty"`
	GroupName string     `json:"leagueGroupName,omitempty"`
	Order     int        `json:"order"`
	Sport     sport.Type `json:"sportType"`
}

func (l League) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.CityID == "" {
		return fmt.Errorf("league city id is required")
	}
	if err := l.Sport.Validate(); err != nil {
		return fmt.Errorf("league sport: %w", err)
	}

	return nil
}

// Group is an independent grouping of leagues, filterable by city and
// sport on the list endpoint.
type Group struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

func (g Group) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("league group name is required")
	}

	return nil
}
