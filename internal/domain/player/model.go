package player

import (
	"fmt"

	"github.com/matchdesk/league-console/internal/domain/sport"
)

// Profile is a person, scoped to one sport. A profile is created once
// and then attached to teams season by season.
type Profile struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	DateOfBirth string     `json:"dateOfBirth,omitempty"`
	Position    string     `json:"position,omitempty"`
	Sport       sport.Type `json:"sportType"`
}

func (p Profile) Validate() error {
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("profile first and last name are required")
	}
	if err := p.Sport.Validate(); err != nil {
		return fmt.Errorf("profile sport: %w", err)
	}

	return nil
}

func (p Profile) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.LastName + " " + p.FirstName
}

// Player is a profile's assignment to a team for a season, with a shirt
// number. Name is denormalized by the API for list rendering.
type Player struct {
	ID          string `json:"id"`
	ProfileID   string `json:"profileId"`
	TeamID      string `json:"teamId"`
	SeasonID    string `json:"seasonId,omitempty"`
	ShirtNumber int    `json:"shirtNumber,omitempty"`
	Name        string `json:"name"`
}

func (p Player) Validate() error {
	if p.ProfileID == "" {
		return fmt.Errorf("player profile id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}

	return nil
}
