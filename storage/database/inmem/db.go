package inmemdb

import (
	"sync"

	"github.com/organisciak/classvote/core/scenario"
	"github.com/organisciak/classvote/core/vote"
)

type (
	DB struct {
		scenario *scenarioTable
		vote     *voteTable
	}

	scenarioTable struct {
		table map[int]*scenario.Scenario
		seq   int
		mutex sync.RWMutex
	}

	voteKey struct {
		scenarioID int
		voterToken string
	}

	voteTable struct {
		table map[voteKey]*vote.Vote
		mutex sync.RWMutex
	}
)

func Open() (*DB, error) {
	db := &DB{
		scenario: &scenarioTable{table: make(map[int]*scenario.Scenario)},
		vote:     &voteTable{table: make(map[voteKey]*vote.Vote)},
	}
	return db, nil
}
