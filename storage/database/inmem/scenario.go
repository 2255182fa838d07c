package inmemdb

import (
	"context"
	"sort"

	"github.com/organisciak/classvote/core/scenario"
	"github.com/organisciak/classvote/core/vote"
)

type scenarioRepository struct {
	db *DB
}

var _ scenario.Repository = (*scenarioRepository)(nil)

func NewScenarioRepository(db *DB) scenario.Repository {
	return &scenarioRepository{db: db}
}

func (repo *scenarioRepository) query() []scenario.Scenario {
	scenarios := make([]scenario.Scenario, 0, len(repo.db.scenario.table))
	for _, sc := range repo.db.scenario.table {
		scenarios = append(scenarios, *sc)
	}
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].ID < scenarios[j].ID })
	return scenarios
}

func (repo *scenarioRepository) CreateScenario(_ context.Context, sc scenario.Scenario) (scenario.Scenario, error) {
	repo.db.scenario.mutex.Lock()
	defer repo.db.scenario.mutex.Unlock()

	repo.db.scenario.seq++
	sc.ID = repo.db.scenario.seq
	repo.db.scenario.table[sc.ID] = &sc
	return sc, nil
}

func (repo *scenarioRepository) QueryAllScenarios(_ context.Context) ([]scenario.Scenario, error) {
	repo.db.scenario.mutex.RLock()
	defer repo.db.scenario.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *scenarioRepository) GetScenarioByID(_ context.Context, id int) (scenario.Scenario, error) {
	repo.db.scenario.mutex.RLock()
	defer repo.db.scenario.mutex.RUnlock()

	if sc, ok := repo.db.scenario.table[id]; ok {
		return *sc, nil
	}
	return scenario.Scenario{}, scenario.ErrNotFound
}

// DeleteAllScenarios also drops all votes, mirroring the SQL backend's
// ON DELETE CASCADE.
func (repo *scenarioRepository) DeleteAllScenarios(_ context.Context) error {
	repo.db.scenario.mutex.Lock()
	defer repo.db.scenario.mutex.Unlock()
	repo.db.vote.mutex.Lock()
	defer repo.db.vote.mutex.Unlock()

	repo.db.scenario.table = make(map[int]*scenario.Scenario)
	repo.db.vote.table = make(map[voteKey]*vote.Vote)
	return nil
}
