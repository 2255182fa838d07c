package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/organisciak/classvote/core/scenario"
	"github.com/organisciak/classvote/core/vote"
)

func CreateScenario(
	t *testing.T,
	repo scenario.Repository,
	text, submittedBy string,
	createdAt ...time.Time,
) scenario.Scenario {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	sc, err := repo.CreateScenario(context.Background(), scenario.Scenario{
		Text:        text,
		SubmittedBy: submittedBy,
		CreatedAt:   tstamp,
	})
	if err != nil {
		t.Fatalf("createScenario() failed: %v", err)
	}
	return sc
}

func CastVote(
	t *testing.T,
	repo vote.Repository,
	scenarioID int,
	voterToken string,
	score int,
	castAt ...time.Time,
) vote.Vote {
	tstamp := time.Now().UTC()
	if len(castAt) > 0 {
		tstamp = castAt[0].UTC()
	}
	v, err := repo.UpsertVote(context.Background(), vote.Vote{
		ID:         uuid.New().String(),
		ScenarioID: scenarioID,
		VoterToken: voterToken,
		Score:      score,
		CastAt:     tstamp,
		UpdatedAt:  tstamp,
	})
	if err != nil {
		t.Fatalf("castVote() failed: %v", err)
	}
	return v
}
