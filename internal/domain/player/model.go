package player

import (
	"fmt"
	"time"
)

// Player is a rostered (or formerly rostered) NHL player. TeamID is zero when
// the player is currently unassigned.
type Player struct {
	ID            int64
	ExternalID    int64
	FirstName     string
	LastName      string
	JerseyNumber  int
	Position      string
	ShootsCatches string
	HeightInches  int
	WeightPounds  int
	BirthDate     *time.Time
	BirthCity     string
	BirthCountry  string
	Nationality   string
	TeamID        int64
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p Player) Validate() error {
	if p.ExternalID <= 0 {
		return fmt.Errorf("player external id is required")
	}

	return nil
}
