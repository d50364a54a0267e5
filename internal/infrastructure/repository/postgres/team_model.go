package postgres

import (
	"time"

	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/team"
)

type teamTableModel struct {
	ID         int64     `db:"id"`
	ExternalID int64     `db:"external_id"`
	Name       string    `db:"name"`
	Code       string    `db:"code"`
	City       string    `db:"city"`
	Conference string    `db:"conference"`
	Division   string    `db:"division"`
	Active     bool      `db:"active"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	ExternalID int64  `db:"external_id"`
	Name       string `db:"name"`
	Code       string `db:"code"`
	City       string `db:"city"`
	Conference string `db:"conference"`
	Division   string `db:"division"`
	Active     bool   `db:"active"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:         m.ID,
		ExternalID: m.ExternalID,
		Name:       m.Name,
		Code:       m.Code,
		City:       m.City,
		Conference: m.Conference,
		Division:   m.Division,
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
