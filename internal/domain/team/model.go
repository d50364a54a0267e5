package team

import (
	"fmt"
	"time"
)

// Team is an NHL franchise keyed by its league-assigned numeric id.
type Team struct {
	ID         int64
	ExternalID int64
	Name       string
	Code       string
	City       string
	Conference string
	Division   string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (t Team) Validate() error {
	if t.ExternalID <= 0 {
		return fmt.Errorf("team external id is required")
	}
	if t.Code == "" {
		return fmt.Errorf("team code is required")
	}

	return nil
}
