package fetchlog

import "time"

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Kind labels what a fetch operation was after.
type Kind string

const (
	KindTeams       Kind = "teams"
	KindPlayers     Kind = "players"
	KindTeamStats   Kind = "team_stats"
	KindPlayerStats Kind = "player_stats"
)

// Entry is one ingestion attempt. Entries are written once and never touched
// again.
type Entry struct {
	ID              int64
	Kind            Kind
	FetchedAt       time.Time
	Status          Status
	RecordsFetched  int
	ErrorMessage    string
	DurationSeconds float64
}
