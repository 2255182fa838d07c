package echoapi

import (
	"github.com/organisciak/classvote/core"
	"github.com/organisciak/classvote/core/vote"
)

type ClearedResponse struct {
	Cleared int `json:"cleared"`
}

// ScenarioResult joins a scenario with the statistics derived from its votes.
type ScenarioResult struct {
	ID          int         `json:"id"`
	Text        string      `json:"text"`
	SubmittedBy string      `json:"submitted_by,omitempty"`
	Count       int         `json:"count"`
	Mean        float64     `json:"mean"`
	Histogram   map[int]int `json:"histogram"`
}

// ResultsResponse is the full results view: one row per scenario ordered by
// mean score, plus the bar chart description.
type ResultsResponse struct {
	Results     []ScenarioResult `json:"results"`
	Chart       []vote.ChartRow  `json:"chart"`
	ScoreLabels map[int]string   `json:"score_labels"`
}

type AdminResetRequest struct {
	Password string `json:"password" validate:"required"`
}

func (r *AdminResetRequest) Validate() error {
	return core.Validate.Struct(r)
}
