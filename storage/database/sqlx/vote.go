package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/organisciak/classvote/core/vote"
)

type voteRow struct {
	ID         string       `db:"id"`
	ScenarioID int          `db:"scenario_id"`
	VoterToken string       `db:"voter_token"`
	Score      int          `db:"score"`
	CastAt     sql.NullTime `db:"cast_at"`
	UpdatedAt  sql.NullTime `db:"updated_at"`
}

func (r voteRow) unrow() vote.Vote {
	return vote.Vote{
		ID:         r.ID,
		ScenarioID: r.ScenarioID,
		VoterToken: r.VoterToken,
		Score:      r.Score,
		CastAt:     r.CastAt.Time,
		UpdatedAt:  r.UpdatedAt.Time,
	}
}

type voteRepository struct {
	db *sqlx.DB
}

var _ vote.Repository = (*voteRepository)(nil) // interface compliance check

func NewVoteRepository(db *sqlx.DB) *voteRepository {
	return &voteRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to vote.ErrNotFound
func (repo voteRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return vote.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

// UpsertVote keeps the (scenario, voter) pair unique: a conflicting insert
// updates the score in place and preserves the original id and cast_at.
func (repo voteRepository) UpsertVote(ctx context.Context, v vote.Vote) (vote.Vote, error) {
	query := `
		INSERT INTO vote (id, scenario_id, voter_token, score, cast_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (scenario_id, voter_token)
			DO UPDATE SET score = EXCLUDED.score, updated_at = EXCLUDED.updated_at
		RETURNING id, cast_at`
	row := repo.db.QueryRowContext(ctx, query, v.ID, v.ScenarioID, v.VoterToken, v.Score, v.CastAt, v.UpdatedAt)
	if err := row.Scan(&v.ID, &v.CastAt); err != nil {
		return vote.Vote{}, errors.Wrap(err, "upserting vote")
	}
	return v, nil
}

func (repo voteRepository) GetVote(ctx context.Context, scenarioID int, voterToken string) (vote.Vote, error) {
	var row voteRow
	query := `SELECT * FROM vote WHERE scenario_id = $1 AND voter_token = $2`
	if err := repo.db.GetContext(ctx, &row, query, scenarioID, voterToken); err != nil {
		return vote.Vote{}, repo.trapNoRowsErr(err, "getting vote")
	}
	return row.unrow(), nil
}

func (repo voteRepository) QueryVotesByScenario(ctx context.Context, scenarioID int) ([]vote.Vote, error) {
	var rows []voteRow
	query := `SELECT * FROM vote WHERE scenario_id = $1 ORDER BY cast_at ASC, voter_token ASC`
	if err := repo.db.SelectContext(ctx, &rows, query, scenarioID); err != nil {
		return nil, errors.Wrap(err, "querying votes")
	}
	return repo.unrowSlice(rows), nil
}

func (repo voteRepository) QueryAllVotes(ctx context.Context) ([]vote.Vote, error) {
	var rows []voteRow
	query := `SELECT * FROM vote ORDER BY scenario_id ASC, cast_at ASC, voter_token ASC`
	if err := repo.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying votes")
	}
	return repo.unrowSlice(rows), nil
}

func (repo voteRepository) unrowSlice(rows []voteRow) []vote.Vote {
	votes := make([]vote.Vote, 0, len(rows))
	for _, r := range rows {
		votes = append(votes, r.unrow())
	}
	return votes
}

func (repo voteRepository) DeleteVote(ctx context.Context, scenarioID int, voterToken string) error {
	query := `DELETE FROM vote WHERE scenario_id = $1 AND voter_token = $2`
	res, err := repo.db.ExecContext(ctx, query, scenarioID, voterToken)
	if err != nil {
		return errors.Wrap(err, "deleting vote")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return vote.ErrNotFound
	}
	return nil
}

func (repo voteRepository) DeleteVotesByVoter(ctx context.Context, voterToken string) (int, error) {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM vote WHERE voter_token = $1`, voterToken)
	if err != nil {
		return 0, errors.Wrap(err, "deleting voter's votes")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "deleting voter's votes")
	}
	return int(n), nil
}

func (repo voteRepository) DeleteAllVotes(ctx context.Context) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM vote`); err != nil {
		return errors.Wrap(err, "deleting votes")
	}
	return nil
}
