package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/organisciak/classvote/core/scenario"
)

type scenarioRow struct {
	ID          int         `db:"id"`
	Text        string      `db:"text"`
	SubmittedBy null.String `db:"submitted_by"`
	CreatedAt   null.Time   `db:"created_at"`
}

func (r scenarioRow) unrow() scenario.Scenario {
	return scenario.Scenario{
		ID:          r.ID,
		Text:        r.Text,
		SubmittedBy: r.SubmittedBy.String,
		CreatedAt:   r.CreatedAt.Time,
	}
}

type scenarioRepository struct {
	db *sqlx.DB
}

var _ scenario.Repository = (*scenarioRepository)(nil) // interface compliance check

func NewScenarioRepository(db *sqlx.DB) *scenarioRepository {
	return &scenarioRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to scenario.ErrNotFound
func (repo scenarioRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return scenario.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo scenarioRepository) CreateScenario(ctx context.Context, sc scenario.Scenario) (scenario.Scenario, error) {
	query := `
		INSERT INTO scenario (text, submitted_by, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	submittedBy := null.NewString(sc.SubmittedBy, sc.SubmittedBy != "")
	if err := repo.db.GetContext(ctx, &sc.ID, query, sc.Text, submittedBy, sc.CreatedAt); err != nil {
		return scenario.Scenario{}, errors.Wrap(err, "inserting scenario")
	}
	return sc, nil
}

func (repo scenarioRepository) QueryAllScenarios(ctx context.Context) ([]scenario.Scenario, error) {
	var rows []scenarioRow
	query := `SELECT * FROM scenario ORDER BY id ASC`
	if err := repo.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying scenarios")
	}

	scenarios := make([]scenario.Scenario, 0, len(rows))
	for _, r := range rows {
		scenarios = append(scenarios, r.unrow())
	}
	return scenarios, nil
}

func (repo scenarioRepository) GetScenarioByID(ctx context.Context, id int) (scenario.Scenario, error) {
	var row scenarioRow
	query := `SELECT * FROM scenario WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, query, id); err != nil {
		return scenario.Scenario{}, repo.trapNoRowsErr(err, "getting scenario")
	}
	return row.unrow(), nil
}

// DeleteAllScenarios drops every scenario; votes follow via ON DELETE CASCADE.
func (repo scenarioRepository) DeleteAllScenarios(ctx context.Context) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM scenario`); err != nil {
		return errors.Wrap(err, "deleting scenarios")
	}
	return nil
}
