// Package sport defines the sport discriminator shared by every
// entity that varies per sport.
package sport

import "fmt"

type Type string

const (
	Football   Type = "football"
	Volleyball Type = "volleyball"
	Basketball Type = "basketball"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) Validate() error {
	switch t {
	case Football, Volleyball, Basketball:
		return nil
	default:
		return fmt.Errorf("unknown sport %q", string(t))
	}
}
