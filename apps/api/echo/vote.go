package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/organisciak/classvote/core/scenario"
	"github.com/organisciak/classvote/core/vote"
)

type voteApi struct {
	scenarioSvc scenario.Service
	svc         vote.Service
}

func registerVoteAPI(g *echo.Group, scenarioSvc scenario.Service, svc vote.Service) {
	api := voteApi{
		scenarioSvc: scenarioSvc,
		svc:         svc,
	}

	g.POST("/scenarios/:id/votes", api.cast)
	g.DELETE("/scenarios/:id/votes/:token", api.retract)
	g.DELETE("/votes/:token", api.clearVoter)
	g.GET("/results", api.results)
	g.GET("/participation", api.participation)
}

// Handlers

func (api *voteApi) cast(ctx echo.Context) error {
	id, err := getIDParam(ctx)
	if err != nil {
		return err
	}

	var data vote.CastVote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CastVote")
	}

	v, created, err := api.svc.Cast(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	if created {
		return ctx.JSON(http.StatusCreated, v)
	}
	return ctx.JSON(http.StatusOK, v)
}

func (api *voteApi) retract(ctx echo.Context) error {
	id, err := getIDParam(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Retract(ctx.Request().Context(), id, ctx.Param("token")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *voteApi) clearVoter(ctx echo.Context) error {
	cleared, err := api.svc.ClearVoter(ctx.Request().Context(), ctx.Param("token"))
	if err != nil {
		return errors.Wrap(err, "clearing voter's votes")
	}
	return ctx.JSON(http.StatusOK, ClearedResponse{Cleared: cleared})
}

func (api *voteApi) results(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	scenarios, err := api.scenarioSvc.QueryAll(reqCtx)
	if err != nil {
		return errors.Wrap(err, "querying scenarios")
	}
	summaries, err := api.svc.AllSummaries(reqCtx)
	if err != nil {
		return errors.Wrap(err, "querying summaries")
	}

	byID := make(map[int]scenario.Scenario, len(scenarios))
	for _, sc := range scenarios {
		byID[sc.ID] = sc
	}

	results := make([]ScenarioResult, 0, len(summaries))
	for _, s := range summaries {
		sc := byID[s.ScenarioID]
		results = append(results, ScenarioResult{
			ID:          sc.ID,
			Text:        sc.Text,
			SubmittedBy: sc.SubmittedBy,
			Count:       s.Count,
			Mean:        s.Mean,
			Histogram:   s.Histogram,
		})
	}
	return ctx.JSON(http.StatusOK, ResultsResponse{
		Results:     results,
		Chart:       vote.Chart(summaries),
		ScoreLabels: vote.ScoreLabels,
	})
}

func (api *voteApi) participation(ctx echo.Context) error {
	participation, err := api.svc.Participation(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying participation")
	}
	return ctx.JSON(http.StatusOK, participation)
}
