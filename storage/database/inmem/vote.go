package inmemdb

import (
	"context"
	"sort"

	"github.com/organisciak/classvote/core/vote"
)

type voteRepository struct {
	db *DB
}

var _ vote.Repository = (*voteRepository)(nil)

func NewVoteRepository(db *DB) vote.Repository {
	return &voteRepository{db: db}
}

func (repo *voteRepository) query() []vote.Vote {
	votes := make([]vote.Vote, 0, len(repo.db.vote.table))
	for _, v := range repo.db.vote.table {
		votes = append(votes, *v)
	}
	sort.Slice(votes, func(i, j int) bool {
		if votes[i].ScenarioID != votes[j].ScenarioID {
			return votes[i].ScenarioID < votes[j].ScenarioID
		}
		if !votes[i].CastAt.Equal(votes[j].CastAt) {
			return votes[i].CastAt.Before(votes[j].CastAt)
		}
		return votes[i].VoterToken < votes[j].VoterToken
	})
	return votes
}

func (repo *voteRepository) UpsertVote(_ context.Context, v vote.Vote) (vote.Vote, error) {
	repo.db.vote.mutex.Lock()
	defer repo.db.vote.mutex.Unlock()

	key := voteKey{scenarioID: v.ScenarioID, voterToken: v.VoterToken}
	if orig, ok := repo.db.vote.table[key]; ok {
		// keep the original identity, only the score changes
		v.ID = orig.ID
		v.CastAt = orig.CastAt
	}
	repo.db.vote.table[key] = &v
	return v, nil
}

func (repo *voteRepository) GetVote(_ context.Context, scenarioID int, voterToken string) (vote.Vote, error) {
	repo.db.vote.mutex.RLock()
	defer repo.db.vote.mutex.RUnlock()

	if v, ok := repo.db.vote.table[voteKey{scenarioID: scenarioID, voterToken: voterToken}]; ok {
		return *v, nil
	}
	return vote.Vote{}, vote.ErrNotFound
}

func (repo *voteRepository) QueryVotesByScenario(_ context.Context, scenarioID int) ([]vote.Vote, error) {
	repo.db.vote.mutex.RLock()
	defer repo.db.vote.mutex.RUnlock()

	votes := make([]vote.Vote, 0)
	for _, v := range repo.query() {
		if v.ScenarioID == scenarioID {
			votes = append(votes, v)
		}
	}
	return votes, nil
}

func (repo *voteRepository) QueryAllVotes(_ context.Context) ([]vote.Vote, error) {
	repo.db.vote.mutex.RLock()
	defer repo.db.vote.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *voteRepository) DeleteVote(_ context.Context, scenarioID int, voterToken string) error {
	repo.db.vote.mutex.Lock()
	defer repo.db.vote.mutex.Unlock()

	key := voteKey{scenarioID: scenarioID, voterToken: voterToken}
	if _, ok := repo.db.vote.table[key]; !ok {
		return vote.ErrNotFound
	}
	delete(repo.db.vote.table, key)
	return nil
}

func (repo *voteRepository) DeleteVotesByVoter(_ context.Context, voterToken string) (int, error) {
	repo.db.vote.mutex.Lock()
	defer repo.db.vote.mutex.Unlock()

	var deleted int
	for key := range repo.db.vote.table {
		if key.voterToken == voterToken {
			delete(repo.db.vote.table, key)
			deleted++
		}
	}
	return deleted, nil
}

func (repo *voteRepository) DeleteAllVotes(_ context.Context) error {
	repo.db.vote.mutex.Lock()
	defer repo.db.vote.mutex.Unlock()

	repo.db.vote.table = make(map[voteKey]*vote.Vote)
	return nil
}
