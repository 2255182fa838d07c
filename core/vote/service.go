package vote

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/organisciak/classvote/core"
	"github.com/organisciak/classvote/core/scenario"
)

var (
	// errors
	ErrNotFound     = errors.New("vote not found")
	ErrAlreadyVoted = errors.New("this voter has already voted on this scenario")
)

type (
	Repository interface {
		// UpsertVote inserts the vote, replacing an existing vote with the
		// same (scenario, voter token) pair.
		UpsertVote(ctx context.Context, v Vote) (Vote, error)
		GetVote(ctx context.Context, scenarioID int, voterToken string) (Vote, error)
		QueryVotesByScenario(ctx context.Context, scenarioID int) ([]Vote, error)
		QueryAllVotes(ctx context.Context) ([]Vote, error)
		DeleteVote(ctx context.Context, scenarioID int, voterToken string) error
		// DeleteVotesByVoter removes all of a voter's votes and returns how many.
		DeleteVotesByVoter(ctx context.Context, voterToken string) (int, error)
		DeleteAllVotes(ctx context.Context) error
	}

	Service interface {
		// Cast records a vote. The returned bool is true when a new vote was
		// created, false when an existing vote was replaced.
		Cast(ctx context.Context, scenarioID int, cv CastVote) (Vote, bool, error)
		Retract(ctx context.Context, scenarioID int, voterToken string) error
		ClearVoter(ctx context.Context, voterToken string) (int, error)
		Summary(ctx context.Context, scenarioID int) (Summary, error)
		AllSummaries(ctx context.Context) ([]Summary, error)
		Participation(ctx context.Context) (Participation, error)
		Reset(ctx context.Context) error
	}

	service struct {
		repo      Repository
		scenarios scenario.Repository
		conf      *core.Config
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, scenarios scenario.Repository, conf *core.Config) Service {
	return &service{
		repo:      repo,
		scenarios: scenarios,
		conf:      conf,
	}
}

func (svc *service) Cast(ctx context.Context, scenarioID int, cv CastVote) (Vote, bool, error) {
	if err := cv.Validate(); err != nil {
		return Vote{}, false, err
	}
	if _, err := svc.scenarios.GetScenarioByID(ctx, scenarioID); err != nil {
		return Vote{}, false, err
	}

	now := time.Now().UTC()
	existing, err := svc.repo.GetVote(ctx, scenarioID, cv.VoterToken)
	switch err {
	case nil:
		// one vote per (scenario, voter): either a conflict or a replacement
		if svc.conf.Voting.PreventDuplicateVotes {
			return Vote{}, false, ErrAlreadyVoted
		}
		existing.Score = cv.Score
		existing.UpdatedAt = now
		v, err := svc.repo.UpsertVote(ctx, existing)
		return v, false, err
	case ErrNotFound:
		v := Vote{
			ID:         uuid.New().String(),
			ScenarioID: scenarioID,
			VoterToken: cv.VoterToken,
			Score:      cv.Score,
			CastAt:     now,
			UpdatedAt:  now,
		}
		v, err = svc.repo.UpsertVote(ctx, v)
		return v, true, err
	default:
		return Vote{}, false, err
	}
}

func (svc *service) Retract(ctx context.Context, scenarioID int, voterToken string) error {
	if _, err := svc.scenarios.GetScenarioByID(ctx, scenarioID); err != nil {
		return err
	}
	return svc.repo.DeleteVote(ctx, scenarioID, core.CleanString(voterToken))
}

func (svc *service) ClearVoter(ctx context.Context, voterToken string) (int, error) {
	return svc.repo.DeleteVotesByVoter(ctx, core.CleanString(voterToken))
}

func (svc *service) Summary(ctx context.Context, scenarioID int) (Summary, error) {
	if _, err := svc.scenarios.GetScenarioByID(ctx, scenarioID); err != nil {
		return Summary{}, err
	}
	votes, err := svc.repo.QueryVotesByScenario(ctx, scenarioID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(scenarioID, votes), nil
}

func (svc *service) AllSummaries(ctx context.Context) ([]Summary, error) {
	scenarios, err := svc.scenarios.QueryAllScenarios(ctx)
	if err != nil {
		return nil, err
	}
	votes, err := svc.repo.QueryAllVotes(ctx)
	if err != nil {
		return nil, err
	}

	byScenario := make(map[int][]Vote, len(scenarios))
	for _, v := range votes {
		byScenario[v.ScenarioID] = append(byScenario[v.ScenarioID], v)
	}

	summaries := make([]Summary, 0, len(scenarios))
	for _, sc := range scenarios {
		summaries = append(summaries, Summarize(sc.ID, byScenario[sc.ID]))
	}
	sortSummaries(summaries)
	return summaries, nil
}

func (svc *service) Participation(ctx context.Context) (Participation, error) {
	votes, err := svc.repo.QueryAllVotes(ctx)
	if err != nil {
		return Participation{}, err
	}

	seen := make(map[string]bool, len(votes))
	voters := make([]string, 0, len(votes))
	for _, v := range votes {
		if !seen[v.VoterToken] {
			seen[v.VoterToken] = true
			voters = append(voters, v.VoterToken)
		}
	}
	sort.Strings(voters)
	return Participation{Count: len(voters), Voters: voters}, nil
}

func (svc *service) Reset(ctx context.Context) error {
	return svc.repo.DeleteAllVotes(ctx)
}
