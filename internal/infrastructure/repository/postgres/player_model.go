package postgres

import (
	"database/sql"
	"time"

	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/player"
)

type playerTableModel struct {
	ID            int64         `db:"id"`
	ExternalID    int64         `db:"external_id"`
	FirstName     string        `db:"first_name"`
	LastName      string        `db:"last_name"`
	JerseyNumber  int           `db:"jersey_number"`
	Position      string        `db:"position"`
	ShootsCatches string        `db:"shoots_catches"`
	HeightInches  int           `db:"height_inches"`
	WeightPounds  int           `db:"weight_pounds"`
	BirthDate     sql.NullTime  `db:"birth_date"`
	BirthCity     string        `db:"birth_city"`
	BirthCountry  string        `db:"birth_country"`
	Nationality   string        `db:"nationality"`
	TeamID        sql.NullInt64 `db:"team_id"`
	Active        bool          `db:"active"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}

type playerInsertModel struct {
	ExternalID    int64         `db:"external_id"`
	FirstName     string        `db:"first_name"`
	LastName      string        `db:"last_name"`
	JerseyNumber  int           `db:"jersey_number"`
	Position      string        `db:"position"`
	ShootsCatches string        `db:"shoots_catches"`
	HeightInches  int           `db:"height_inches"`
	WeightPounds  int           `db:"weight_pounds"`
	BirthDate     sql.NullTime  `db:"birth_date"`
	BirthCity     string        `db:"birth_city"`
	BirthCountry  string        `db:"birth_country"`
	Nationality   string        `db:"nationality"`
	TeamID        sql.NullInt64 `db:"team_id"`
	Active        bool          `db:"active"`
}

func (m playerTableModel) toDomain() player.Player {
	out := player.Player{
		ID:            m.ID,
		ExternalID:    m.ExternalID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		JerseyNumber:  m.JerseyNumber,
		Position:      m.Position,
		ShootsCatches: m.ShootsCatches,
		HeightInches:  m.HeightInches,
		WeightPounds:  m.WeightPounds,
		BirthDate:     nullTimeToPtr(m.BirthDate),
		BirthCity:     m.BirthCity,
		BirthCountry:  m.BirthCountry,
		Nationality:   m.Nationality,
		Active:        m.Active,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.TeamID.Valid {
		out.TeamID = m.TeamID.Int64
	}
	return out
}

func teamIDToNull(teamID int64) sql.NullInt64 {
	if teamID <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: teamID, Valid: true}
}
