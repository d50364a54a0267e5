package teamstats

import (
	"fmt"
	"time"
)

// SeasonStats is one team's season record. One row per (team, season).
type SeasonStats struct {
	ID               int64
	TeamID           int64
	Season           string
	GamesPlayed      int
	Wins             int
	Losses           int
	OvertimeLosses   int
	Points           int
	PointPctg        float64
	GoalsFor         int
	GoalsAgainst     int
	GoalDifferential int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (s SeasonStats) Validate() error {
	if s.TeamID <= 0 {
		return fmt.Errorf("team stats team id is required")
	}
	if s.Season == "" {
		return fmt.Errorf("team stats season is required")
	}

	return nil
}
