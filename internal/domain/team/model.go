package team

import (
	"fmt"

	"github.com/matchdesk/league-console/internal/domain/sport"
)

type Team struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	PrimaryColor   string     `json:"primaryColor,omitempty"`
	SecondaryColor string     `json:"secondaryColor,omitempty"`
	CityID         string     `json:"cityId"`
	LeagueID       string     `json:"leagueId,omitempty"`
	Sport          sport.Type `json:"sportType"`
}

func (t Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.CityID == "" {
		return fmt.Errorf("team city id is required")
	}
	if err := t.Sport.Validate(); err != nil {
		return fmt.Errorf("team sport: %w", err)
	}

	return nil
}
