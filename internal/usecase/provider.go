package usecase

import (
	"context"
	"time"
)

// ExternalTeam is one franchise as reported by the stats provider, already
// flattened out of whichever payload dialect it arrived in.
type ExternalTeam struct {
	ExternalID int64
	Name       string
	Code       string
	City       string
	Conference string
	Division   string
	Active     bool
}

// ExternalPlayer is one roster entry. BirthDate is nil when the provider
// omitted it or sent a date in a shape we do not recognize.
type ExternalPlayer struct {
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
}

// ExternalTeamStats is one team's season aggregate. Missing numeric fields
// decode to zero rather than failing the fetch.
type ExternalTeamStats struct {
	GamesPlayed      int
	Wins             int
	Losses           int
	OvertimeLosses   int
	Points           int
	PointPctg        float64
	GoalsFor         int
	GoalsAgainst     int
	GoalDifferential int
}

// ExternalPlayerStats is one player's season line from the league leaders
// feeds. Skater and goalie rows share the struct; fields that do not apply
// to the position stay zero.
type ExternalPlayerStats struct {
	PlayerExternalID int64
	Season           string
	TeamCode         string
	Goalie           bool

	GamesPlayed      int
	Goals            int
	Assists          int
	Points           int
	PlusMinus        int
	PenaltyMinutes   int
	PowerPlayGoals   int
	PowerPlayPoints  int
	ShortHandedGoals int
	ShortHandedPoint int
	GameWinningGoals int
	OvertimeGoals    int
	Shots            int
	ShootingPctg     float64
	TimeOnIcePerGame float64
	FaceoffPctg      float64

	Wins                int
	Losses              int
	OvertimeLosses      int
	Saves               int
	ShotsAgainst        int
	GoalsAgainst        int
	SavePctg            float64
	GoalsAgainstAverage float64
	Shutouts            int
}

// StatsProvider is the upstream NHL data source as the sync service sees it.
// Fetch methods report failures through the error taxonomy in errors.go:
// ErrEmptyUpstream when the API answered with nothing usable and
// ErrUpstreamTransport for everything network shaped.
type StatsProvider interface {
	CurrentSeason() string
	FetchTeams(ctx context.Context) ([]ExternalTeam, error)
	FetchRoster(ctx context.Context, teamCode, season string) ([]ExternalPlayer, error)
	FetchTeamStats(ctx context.Context, teamCode, season string) (ExternalTeamStats, error)
	FetchSkaterLeaders(ctx context.Context, season string) ([]ExternalPlayerStats, error)
	FetchGoalieLeaders(ctx context.Context, season string) ([]ExternalPlayerStats, error)
}
