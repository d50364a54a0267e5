package nhlapi

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/james-henry-git/nhl-stats-tracker/internal/usecase"
)

var logoTeamIDRegex = regexp.MustCompile(`/(\d+)\.`)

// teamIDByCode pins the league's franchise ids to their abbreviations for
// standings rows whose logo URL carries no id. The standings feed has no id
// field of its own.
var teamIDByCode = map[string]int64{
	"NJD": 1, "NYI": 2, "NYR": 3, "PHI": 4, "PIT": 5, "BOS": 6,
	"BUF": 7, "MTL": 8, "OTT": 9, "TOR": 10, "CAR": 12, "FLA": 13,
	"TBL": 14, "WSH": 15, "CHI": 16, "DET": 17, "NSH": 18, "STL": 19,
	"CGY": 20, "COL": 21, "EDM": 22, "VAN": 23, "ANA": 24, "DAL": 25,
	"LAK": 26, "SJS": 28, "CBJ": 29, "MIN": 30, "WPG": 52, "VGK": 54,
	"SEA": 55, "UTA": 59,
}

type standingsEnvelope struct {
	Standings []standingRow `json:"standings"`
}

type standingRow struct {
	TeamAbbrev     localizedString `json:"teamAbbrev"`
	TeamName       localizedString `json:"teamName"`
	TeamCommonName localizedString `json:"teamCommonName"`
	PlaceName      localizedString `json:"placeName"`
	TeamLogo       string          `json:"teamLogo"`
	ConferenceName string          `json:"conferenceName"`
	DivisionName   string          `json:"divisionName"`
}

type legacyTeamsEnvelope struct {
	Teams []legacyTeamRow `json:"teams"`
}

type legacyTeamRow struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	FullName     string `json:"fullName"`
	Abbreviation string `json:"abbreviation"`
	TriCode      string `json:"triCode"`
	LocationName string `json:"locationName"`
	Venue        struct {
		City string `json:"city"`
	} `json:"venue"`
	Conference struct {
		Name string `json:"name"`
	} `json:"conference"`
	Division struct {
		Name string `json:"name"`
	} `json:"division"`
	Active bool `json:"active"`
}

// FetchTeams lists the league's franchises. The standings feed is the primary
// source; when it is unreachable the legacy flat team list fills in. Both
// dialects flatten into the same ExternalTeam shape.
func (c *Client) FetchTeams(ctx context.Context) ([]usecase.ExternalTeam, error) {
	var standings standingsEnvelope
	err := c.getJSON(ctx, c.apiBase, "/standings/now", nil, &standings)
	if err == nil {
		if len(standings.Standings) == 0 {
			return nil, fmt.Errorf("list teams: %w", usecase.ErrEmptyUpstream)
		}
		return mapStandingsToTeams(standings.Standings), nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	c.logger.WarnContext(ctx, "standings feed unavailable, falling back to legacy team list", "error", err)

	var legacy legacyTeamsEnvelope
	if err := c.getJSON(ctx, c.legacyBase, "/teams", nil, &legacy); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	if len(legacy.Teams) == 0 {
		return nil, fmt.Errorf("list teams: %w", usecase.ErrEmptyUpstream)
	}
	return mapLegacyToTeams(legacy.Teams), nil
}

func mapStandingsToTeams(rows []standingRow) []usecase.ExternalTeam {
	byCode := make(map[string]usecase.ExternalTeam, len(rows))
	order := make([]string, 0, len(rows))

	for _, row := range rows {
		code := strings.ToUpper(row.TeamAbbrev.Value)
		if code == "" {
			continue
		}
		if _, seen := byCode[code]; seen {
			continue
		}

		team := usecase.ExternalTeam{
			ExternalID: resolveTeamID(code, row.TeamLogo),
			Name:       standingsTeamName(row),
			Code:       code,
			City:       row.PlaceName.Value,
			Conference: strings.TrimSpace(row.ConferenceName),
			Division:   strings.TrimSpace(row.DivisionName),
			Active:     true,
		}
		if team.ExternalID <= 0 {
			continue
		}
		byCode[code] = team
		order = append(order, code)
	}

	sort.Strings(order)
	out := make([]usecase.ExternalTeam, 0, len(order))
	for _, code := range order {
		out = append(out, byCode[code])
	}
	return out
}

// standingsTeamName prefers the feed's full team name and otherwise composes
// one from the place and common names. Empty string is the terminal fallback,
// never a reason to drop the row.
func standingsTeamName(row standingRow) string {
	if name := strings.TrimSpace(row.TeamName.Value); name != "" {
		return name
	}
	return strings.TrimSpace(row.PlaceName.Value + " " + row.TeamCommonName.Value)
}

func mapLegacyToTeams(rows []legacyTeamRow) []usecase.ExternalTeam {
	out := make([]usecase.ExternalTeam, 0, len(rows))
	for _, row := range rows {
		code := strings.ToUpper(firstNonEmpty(row.Abbreviation, row.TriCode))
		name := firstNonEmpty(row.Name, row.FullName)
		if row.ID <= 0 || code == "" || name == "" {
			continue
		}
		out = append(out, usecase.ExternalTeam{
			ExternalID: row.ID,
			Name:       name,
			Code:       code,
			City:       firstNonEmpty(row.LocationName, row.Venue.City),
			Conference: strings.TrimSpace(row.Conference.Name),
			Division:   strings.TrimSpace(row.Division.Name),
			Active:     row.Active,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// resolveTeamID pulls the franchise id out of the logo asset URL and falls
// back to the pinned table when the URL carries none.
func resolveTeamID(code, logoURL string) int64 {
	if match := logoTeamIDRegex.FindStringSubmatch(logoURL); len(match) == 2 {
		if id, err := strconv.ParseInt(match[1], 10, 64); err == nil && id > 0 {
			return id
		}
	}
	return teamIDByCode[code]
}
