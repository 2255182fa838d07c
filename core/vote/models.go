package vote

import (
	"time"

	"github.com/organisciak/classvote/core"
)

// Score bounds of the ethics scale.
const (
	MinScore = 1
	MaxScore = 5
)

// ScoreLabels maps each score to the label shown next to it on the voting form.
var ScoreLabels = map[int]string{
	1: "Clearly Unacceptable",
	2: "Somewhat Unacceptable",
	3: "Neutral/Borderline",
	4: "Somewhat Acceptable",
	5: "Clearly Acceptable",
}

type Vote struct {
	ID         string    `json:"id"`
	ScenarioID int       `json:"scenario_id"`
	VoterToken string    `json:"voter_token"`
	Score      int       `json:"score"`
	CastAt     time.Time `json:"cast_at"`    // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

// CastVote contains information needed to cast (or re-cast) a Vote.
type CastVote struct {
	Score      int    `json:"score" validate:"required,score"`
	VoterToken string `json:"voter_token" validate:"required,max=120"`
}

func (cv *CastVote) Validate() error {
	cv.VoterToken = core.CleanString(cv.VoterToken)
	return core.Validate.Struct(cv)
}

// Summary holds the derived statistics for one scenario's votes.
// It is recomputed from the vote set on every read and never stored.
type Summary struct {
	ScenarioID int         `json:"scenario_id"`
	Count      int         `json:"count"`
	Mean       float64     `json:"mean"` // 0 when Count == 0
	Histogram  map[int]int `json:"histogram"`
}

// Participation lists who has voted so far.
type Participation struct {
	Count  int      `json:"count"`
	Voters []string `json:"voters"`
}
