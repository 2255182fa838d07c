package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/organisciak/classvote/core"
	"github.com/organisciak/classvote/core/scenario"
	"github.com/organisciak/classvote/core/vote"
)

type adminApi struct {
	scenarioSvc scenario.Service
	voteSvc     vote.Service
	conf        *core.Config
}

func registerAdminAPI(g *echo.Group, scenarioSvc scenario.Service, voteSvc vote.Service, conf *core.Config) {
	api := adminApi{
		scenarioSvc: scenarioSvc,
		voteSvc:     voteSvc,
		conf:        conf,
	}

	ag := g.Group("/admin")
	// TODO: rate limit `/reset`
	ag.POST("/reset", api.reset)
}

// reset wipes all scenarios and votes. It is guarded by the instructor
// password; no reset is possible when none is configured.
func (api *adminApi) reset(ctx echo.Context) error {
	if api.conf.AdminPasswordHash == "" {
		return errHttpForbidden
	}

	var data AdminResetRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AdminResetRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(api.conf.AdminPasswordHash), []byte(data.Password)); err != nil {
		return errHttpForbidden
	}

	reqCtx := ctx.Request().Context()
	if err := api.voteSvc.Reset(reqCtx); err != nil {
		return errors.Wrap(err, "resetting votes")
	}
	if err := api.scenarioSvc.Reset(reqCtx); err != nil {
		return errors.Wrap(err, "resetting scenarios")
	}
	return ctx.NoContent(http.StatusNoContent)
}
