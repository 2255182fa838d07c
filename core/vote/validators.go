package vote

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/organisciak/classvote/core"
)

var (
	scoreTag  = "score"
	scoreText = fmt.Sprintf("score must be an integer between %d and %d", MinScore, MaxScore)
)

func init() {
	// register validators
	_ = core.Validate.RegisterValidation(scoreTag, scoreValidation)
	core.RegisterCustomTranslation(scoreTag, scoreText)
}

// scoreValidation checks that a score is on the 1-5 ethics scale.
func scoreValidation(fl validator.FieldLevel) bool {
	score := fl.Field().Int()
	return score >= MinScore && score <= MaxScore
}
