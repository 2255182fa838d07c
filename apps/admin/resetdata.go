package main

import (
	"context"
	"fmt"
)

// resetData wipes all scenarios and votes, e.g. between class sessions.
func (cli *commandLine) resetData() error {
	ctx := context.Background()

	if err := cli.voteRepo.DeleteAllVotes(ctx); err != nil {
		return err
	}
	if err := cli.scenarioRepo.DeleteAllScenarios(ctx); err != nil {
		return err
	}
	fmt.Println("All scenarios and votes deleted.")
	return nil
}
