package scenario

import (
	"context"
	"time"

	"github.com/organisciak/classvote/core"
)

type Scenario struct {
	ID          int       `json:"id"`
	Text        string    `json:"text"`
	SubmittedBy string    `json:"submitted_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// NewScenario contains information needed to submit a new Scenario.
type NewScenario struct {
	Text        string `json:"text" validate:"required"`
	SubmittedBy string `json:"submitted_by" validate:"omitempty,max=120"`
}

func (ns *NewScenario) Validate(ctx context.Context, svc Service) error {
	ns.Text = core.CleanString(ns.Text)
	ns.SubmittedBy = core.CleanString(ns.SubmittedBy)

	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckText(ctx, ns.Text)
}
