package city

import "fmt"

// City is the top of the parent hierarchy: leagues, seasons, teams and
// cups all hang off a city.
type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c City) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("city name is required")
	}

	return nil
}
