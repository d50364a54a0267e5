package playerstats

import (
	"fmt"
	"time"
)

// SeasonStats is one player's season line. Skater and goalie columns share a
// row; whichever block does not apply stays at its zero value.
type SeasonStats struct {
	ID       int64
	PlayerID int64
	Season   string
	TeamID   int64

	GamesPlayed int

	// Skater block.
	Goals              int
	Assists            int
	Points             int
	PlusMinus          int
	PenaltyMinutes     int
	PowerPlayGoals     int
	PowerPlayPoints    int
	ShortHandedGoals   int
	ShortHandedPoints  int
	GameWinningGoals   int
	OvertimeGoals      int
	Shots              int
	ShootingPctg       float64
	TimeOnIcePerGame   float64
	FaceoffPctg        float64

	// Goalie block.
	Wins                int
	Losses              int
	OvertimeLosses      int
	Saves               int
	ShotsAgainst        int
	GoalsAgainst        int
	SavePctg            float64
	GoalsAgainstAverage float64
	Shutouts            int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s SeasonStats) Validate() error {
	if s.PlayerID <= 0 {
		return fmt.Errorf("player stats player id is required")
	}
	if s.Season == "" {
		return fmt.Errorf("player stats season is required")
	}

	return nil
}
