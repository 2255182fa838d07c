package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/organisciak/classvote/core"
	"github.com/organisciak/classvote/storage/database"
	sqlxrepos "github.com/organisciak/classvote/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.Conf

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	dbx := sqlx.NewDb(db, conf.Database.Engine)

	// start CLI
	cli := commandLine{
		db:           db,
		scenarioRepo: sqlxrepos.NewScenarioRepository(dbx),
		voteRepo:     sqlxrepos.NewVoteRepository(dbx),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
