package nhlapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/james-henry-git/nhl-stats-tracker/internal/usecase"
)

type rosterEnvelope struct {
	Forwards   []rosterPlayerRow `json:"forwards"`
	Defensemen []rosterPlayerRow `json:"defensemen"`
	Goalies    []rosterPlayerRow `json:"goalies"`
}

type rosterPlayerRow struct {
	ID             int64           `json:"id"`
	FirstName      localizedString `json:"firstName"`
	LastName       localizedString `json:"lastName"`
	SweaterNumber  int             `json:"sweaterNumber"`
	PositionCode   string          `json:"positionCode"`
	ShootsCatches  string          `json:"shootsCatches"`
	HeightInInches int             `json:"heightInInches"`
	WeightInPounds int             `json:"weightInPounds"`
	BirthDate      string          `json:"birthDate"`
	BirthCity      localizedString `json:"birthCity"`
	BirthCountry   string          `json:"birthCountry"`
}

// FetchRoster returns the active roster for one team in one season, with the
// provider's forwards/defensemen/goalies groups flattened into a single list.
func (c *Client) FetchRoster(ctx context.Context, teamCode, season string) ([]usecase.ExternalPlayer, error) {
	teamCode = strings.ToUpper(strings.TrimSpace(teamCode))
	if teamCode == "" {
		return nil, fmt.Errorf("%w: team code is required", usecase.ErrInvalidInput)
	}
	season = strings.TrimSpace(season)
	if season == "" {
		season = c.CurrentSeason()
	}

	path := fmt.Sprintf("/roster/%s/%s", teamCode, season)
	var envelope rosterEnvelope
	if err := c.getJSON(ctx, c.apiBase, path, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch roster team=%s season=%s: %w", teamCode, season, err)
	}

	total := len(envelope.Forwards) + len(envelope.Defensemen) + len(envelope.Goalies)
	if total == 0 {
		return nil, fmt.Errorf("fetch roster team=%s season=%s: %w", teamCode, season, usecase.ErrEmptyUpstream)
	}

	out := make([]usecase.ExternalPlayer, 0, total)
	for _, group := range [][]rosterPlayerRow{envelope.Forwards, envelope.Defensemen, envelope.Goalies} {
		for _, row := range group {
			if row.ID <= 0 {
				continue
			}
			out = append(out, mapRosterRowToPlayer(row))
		}
	}
	return out, nil
}

func mapRosterRowToPlayer(row rosterPlayerRow) usecase.ExternalPlayer {
	country := strings.TrimSpace(row.BirthCountry)
	return usecase.ExternalPlayer{
		ExternalID:    row.ID,
		FirstName:     row.FirstName.Value,
		LastName:      row.LastName.Value,
		JerseyNumber:  row.SweaterNumber,
		Position:      strings.ToUpper(strings.TrimSpace(row.PositionCode)),
		ShootsCatches: strings.ToUpper(strings.TrimSpace(row.ShootsCatches)),
		HeightInches:  row.HeightInInches,
		WeightPounds:  row.WeightInPounds,
		BirthDate:     parseProviderDate(row.BirthDate),
		BirthCity:     row.BirthCity.Value,
		BirthCountry:  country,
		Nationality:   country,
	}
}
