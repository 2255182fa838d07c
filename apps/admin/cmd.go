package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/organisciak/classvote/core/scenario"
	"github.com/organisciak/classvote/core/vote"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db           *sql.DB
	scenarioRepo scenario.Repository
	voteRepo     vote.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a database migration command (up, down, status, ...)")
	fmt.Println("  resetdata -yes - delete all scenarios and votes")
	fmt.Println("  hashpassword - hash the instructor password for the config. The password will be prompted next.")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	resetDataCmd := flag.NewFlagSet("resetdata", flag.ExitOnError)
	resetDataYes := resetDataCmd.Bool("yes", false, "Confirm the deletion of all scenarios and votes.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "resetdata":
		if err := resetDataCmd.Parse(args[2:]); err != nil {
			return err
		}
		if !*resetDataYes {
			resetDataCmd.Usage()
			return errHelp
		}
		return cli.resetData()
	case "hashpassword":
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			cli.printUsage()
			return errHelp
		}
		return cli.hashPassword(string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}
