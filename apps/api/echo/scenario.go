package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/organisciak/classvote/core/scenario"
	"github.com/organisciak/classvote/core/vote"
)

type scenarioApi struct {
	svc     scenario.Service
	voteSvc vote.Service
}

func registerScenarioAPI(g *echo.Group, svc scenario.Service, voteSvc vote.Service) {
	api := scenarioApi{
		svc:     svc,
		voteSvc: voteSvc,
	}

	sg := g.Group("/scenarios")
	sg.POST("", api.create)
	sg.GET("", api.query)

	// detail endpoints
	dg := sg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.GET("/summary", api.summary)
}

// Handlers

func (api *scenarioApi) create(ctx echo.Context) error {
	var data scenario.NewScenario
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewScenario")
	}

	sc, err := api.svc.Submit(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sc)
}

func (api *scenarioApi) query(ctx echo.Context) error {
	scenarios, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying scenarios")
	}
	if scenarios == nil {
		scenarios = []scenario.Scenario{}
	}
	return ctx.JSON(http.StatusOK, scenarios)
}

func (api *scenarioApi) retrieve(ctx echo.Context) error {
	id, err := getIDParam(ctx)
	if err != nil {
		return err
	}
	sc, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sc)
}

func (api *scenarioApi) summary(ctx echo.Context) error {
	id, err := getIDParam(ctx)
	if err != nil {
		return err
	}
	summary, err := api.voteSvc.Summary(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, summary)
}

func getIDParam(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}
