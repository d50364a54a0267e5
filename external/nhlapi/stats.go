package nhlapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/james-henry-git/nhl-stats-tracker/internal/usecase"
)

const leadersPageSize = "100"

type clubStatsEnvelope struct {
	Standings *clubStandingsRow `json:"standings"`
}

// clubStandingsRow accepts both spellings of the goal totals; the feed has
// carried `goalFor`/`goalAgainst` as well as the plural forms.
type clubStandingsRow struct {
	GamesPlayed      int     `json:"gamesPlayed"`
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	OTLosses         int     `json:"otLosses"`
	Points           int     `json:"points"`
	PointPctg        float64 `json:"pointPctg"`
	GoalsFor         int     `json:"goalsFor"`
	GoalFor          int     `json:"goalFor"`
	GoalsAgainst     int     `json:"goalsAgainst"`
	GoalAgainst      int     `json:"goalAgainst"`
	GoalDifferential int     `json:"goalDifferential"`
}

// FetchTeamStats returns one team's regular-season aggregate line.
func (c *Client) FetchTeamStats(ctx context.Context, teamCode, season string) (usecase.ExternalTeamStats, error) {
	teamCode = strings.ToUpper(strings.TrimSpace(teamCode))
	if teamCode == "" {
		return usecase.ExternalTeamStats{}, fmt.Errorf("%w: team code is required", usecase.ErrInvalidInput)
	}
	season = strings.TrimSpace(season)
	if season == "" {
		season = c.CurrentSeason()
	}

	path := fmt.Sprintf("/club-stats/%s/%s/2", teamCode, season)
	var envelope clubStatsEnvelope
	if err := c.getJSON(ctx, c.apiBase, path, nil, &envelope); err != nil {
		return usecase.ExternalTeamStats{}, fmt.Errorf("fetch team stats team=%s season=%s: %w", teamCode, season, err)
	}
	if envelope.Standings == nil {
		return usecase.ExternalTeamStats{}, fmt.Errorf("fetch team stats team=%s season=%s: %w", teamCode, season, usecase.ErrEmptyUpstream)
	}

	row := envelope.Standings
	out := usecase.ExternalTeamStats{
		GamesPlayed:      row.GamesPlayed,
		Wins:             row.Wins,
		Losses:           row.Losses,
		OvertimeLosses:   row.OTLosses,
		Points:           row.Points,
		PointPctg:        row.PointPctg,
		GoalsFor:         firstNonZero(row.GoalsFor, row.GoalFor),
		GoalsAgainst:     firstNonZero(row.GoalsAgainst, row.GoalAgainst),
		GoalDifferential: row.GoalDifferential,
	}
	if out.GoalDifferential == 0 && (out.GoalsFor != 0 || out.GoalsAgainst != 0) {
		out.GoalDifferential = out.GoalsFor - out.GoalsAgainst
	}
	return out, nil
}

type skaterSummaryEnvelope struct {
	Data []skaterSummaryRow `json:"data"`
}

type skaterSummaryRow struct {
	PlayerID         int64   `json:"playerId"`
	TeamAbbrevs      string  `json:"teamAbbrevs"`
	GamesPlayed      int     `json:"gamesPlayed"`
	Goals            int     `json:"goals"`
	Assists          int     `json:"assists"`
	Points           int     `json:"points"`
	PlusMinus        int     `json:"plusMinus"`
	PenaltyMinutes   int     `json:"penaltyMinutes"`
	PPGoals          int     `json:"ppGoals"`
	PPPoints         int     `json:"ppPoints"`
	SHGoals          int     `json:"shGoals"`
	SHPoints         int     `json:"shPoints"`
	GameWinningGoals int     `json:"gameWinningGoals"`
	OTGoals          int     `json:"otGoals"`
	Shots            int     `json:"shots"`
	ShootingPct      float64 `json:"shootingPct"`
	TimeOnIcePerGame float64 `json:"timeOnIcePerGame"`
	FaceoffWinPct    float64 `json:"faceoffWinPct"`
}

type goalieSummaryEnvelope struct {
	Data []goalieSummaryRow `json:"data"`
}

type goalieSummaryRow struct {
	PlayerID            int64   `json:"playerId"`
	TeamAbbrevs         string  `json:"teamAbbrevs"`
	GamesPlayed         int     `json:"gamesPlayed"`
	Wins                int     `json:"wins"`
	Losses              int     `json:"losses"`
	OTLosses            int     `json:"otLosses"`
	Saves               int     `json:"saves"`
	ShotsAgainst        int     `json:"shotsAgainst"`
	GoalsAgainst        int     `json:"goalsAgainst"`
	SavePct             float64 `json:"savePct"`
	GoalsAgainstAverage float64 `json:"goalsAgainstAverage"`
	Shutouts            int     `json:"shutouts"`
}

// FetchSkaterLeaders returns the season's top skaters by points from the
// stats REST service.
func (c *Client) FetchSkaterLeaders(ctx context.Context, season string) ([]usecase.ExternalPlayerStats, error) {
	season = strings.TrimSpace(season)
	if season == "" {
		season = c.CurrentSeason()
	}

	query := map[string]string{
		"cayenneExp": fmt.Sprintf("seasonId=%s and gameTypeId=2", season),
		"sort":       "points",
		"limit":      leadersPageSize,
	}
	var envelope skaterSummaryEnvelope
	if err := c.getJSON(ctx, c.statsBase, "/skater/summary", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch skater leaders season=%s: %w", season, err)
	}
	if len(envelope.Data) == 0 {
		return nil, fmt.Errorf("fetch skater leaders season=%s: %w", season, usecase.ErrEmptyUpstream)
	}

	out := make([]usecase.ExternalPlayerStats, 0, len(envelope.Data))
	for _, row := range envelope.Data {
		if row.PlayerID <= 0 {
			continue
		}
		out = append(out, usecase.ExternalPlayerStats{
			PlayerExternalID: row.PlayerID,
			Season:           season,
			TeamCode:         primaryTeamCode(row.TeamAbbrevs),
			GamesPlayed:      row.GamesPlayed,
			Goals:            row.Goals,
			Assists:          row.Assists,
			Points:           row.Points,
			PlusMinus:        row.PlusMinus,
			PenaltyMinutes:   row.PenaltyMinutes,
			PowerPlayGoals:   row.PPGoals,
			PowerPlayPoints:  row.PPPoints,
			ShortHandedGoals: row.SHGoals,
			ShortHandedPoint: row.SHPoints,
			GameWinningGoals: row.GameWinningGoals,
			OvertimeGoals:    row.OTGoals,
			Shots:            row.Shots,
			ShootingPctg:     row.ShootingPct,
			TimeOnIcePerGame: row.TimeOnIcePerGame,
			FaceoffPctg:      row.FaceoffWinPct,
		})
	}
	return out, nil
}

// FetchGoalieLeaders returns the season's top goaltenders by wins.
func (c *Client) FetchGoalieLeaders(ctx context.Context, season string) ([]usecase.ExternalPlayerStats, error) {
	season = strings.TrimSpace(season)
	if season == "" {
		season = c.CurrentSeason()
	}

	query := map[string]string{
		"cayenneExp": fmt.Sprintf("seasonId=%s and gameTypeId=2", season),
		"sort":       "wins",
		"limit":      leadersPageSize,
	}
	var envelope goalieSummaryEnvelope
	if err := c.getJSON(ctx, c.statsBase, "/goalie/summary", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch goalie leaders season=%s: %w", season, err)
	}
	if len(envelope.Data) == 0 {
		return nil, fmt.Errorf("fetch goalie leaders season=%s: %w", season, usecase.ErrEmptyUpstream)
	}

	out := make([]usecase.ExternalPlayerStats, 0, len(envelope.Data))
	for _, row := range envelope.Data {
		if row.PlayerID <= 0 {
			continue
		}
		out = append(out, usecase.ExternalPlayerStats{
			PlayerExternalID:    row.PlayerID,
			Season:              season,
			TeamCode:            primaryTeamCode(row.TeamAbbrevs),
			Goalie:              true,
			GamesPlayed:         row.GamesPlayed,
			Wins:                row.Wins,
			Losses:              row.Losses,
			OvertimeLosses:      row.OTLosses,
			Saves:               row.Saves,
			ShotsAgainst:        row.ShotsAgainst,
			GoalsAgainst:        row.GoalsAgainst,
			SavePctg:            row.SavePct,
			GoalsAgainstAverage: row.GoalsAgainstAverage,
			Shutouts:            row.Shutouts,
		})
	}
	return out, nil
}

// primaryTeamCode keeps the last abbreviation when a traded player carries a
// comma-joined list, matching where the player finished the season.
func primaryTeamCode(raw string) string {
	parts := strings.Split(raw, ",")
	if len(parts) == 0 {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(parts[len(parts)-1]))
}
