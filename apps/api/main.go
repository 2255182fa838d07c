package main

import (
	"context"
	"database/sql"
	"expvar"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/organisciak/classvote/apps/api/echo"
	"github.com/organisciak/classvote/core"
	"github.com/organisciak/classvote/core/scenario"
	"github.com/organisciak/classvote/core/vote"
	emailsvc "github.com/organisciak/classvote/services/email"
	logsvc "github.com/organisciak/classvote/services/logger"
	"github.com/organisciak/classvote/storage/database"
	inmemdb "github.com/organisciak/classvote/storage/database/inmem"
	sqlxrepos "github.com/organisciak/classvote/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.Conf

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!(conf.Debug || conf.TestMode))

	scenarioRepo, voteRepo, closeDB, err := setUpRepos(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = closeDB(); err != nil {
			logger.Error("failed to close DB", err)
		}
	}()

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(logger, conf)
	}

	scenarioSvc := scenario.NewService(scenarioRepo, mailSvc, conf)
	voteSvc := vote.NewService(voteRepo, scenarioRepo, conf)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:        conf,
			Logger:      logger,
			ScenarioSvc: scenarioSvc,
			VoteSvc:     voteSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// setUpRepos wires the storage backend: Postgres when a DB user is configured,
// the in-memory store otherwise (handy for demos and classrooms without a DB).
func setUpRepos(conf *core.Config) (scenario.Repository, vote.Repository, func() error, error) {
	if conf.Database.User == "" {
		db, err := inmemdb.Open()
		if err != nil {
			return nil, nil, nil, err
		}
		return inmemdb.NewScenarioRepository(db), inmemdb.NewVoteRepository(db), func() error { return nil }, nil
	}

	db, err := setUpDB(conf)
	if err != nil {
		return nil, nil, nil, err
	}
	dbx := sqlx.NewDb(db, conf.Database.Engine)
	return sqlxrepos.NewScenarioRepository(dbx), sqlxrepos.NewVoteRepository(dbx), db.Close, nil
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
