package scenario

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/organisciak/classvote/core"
)

var (
	// errors
	ErrNotFound       = errors.New("scenario not found")
	ErrScenarioExists = errors.New("a very similar scenario was already submitted")
)

type (
	Repository interface {
		CreateScenario(ctx context.Context, sc Scenario) (Scenario, error)
		// QueryAllScenarios returns all scenarios in submission order (ID ascending).
		QueryAllScenarios(ctx context.Context) ([]Scenario, error)
		GetScenarioByID(ctx context.Context, id int) (Scenario, error)
		DeleteAllScenarios(ctx context.Context) error
	}

	Service interface {
		Submit(ctx context.Context, ns NewScenario) (Scenario, error)
		QueryAll(ctx context.Context) ([]Scenario, error)
		GetByID(ctx context.Context, id int) (Scenario, error)
		CheckText(ctx context.Context, text string) error
		Reset(ctx context.Context) error
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) Service {
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

func (svc *service) Submit(ctx context.Context, ns NewScenario) (Scenario, error) {
	if err := ns.Validate(ctx, svc); err != nil {
		return Scenario{}, err
	}

	now := time.Now().UTC()
	sc := Scenario{
		Text:        ns.Text,
		SubmittedBy: ns.SubmittedBy,
		CreatedAt:   now,
	}
	sc, err := svc.repo.CreateScenario(ctx, sc)
	if err != nil {
		return Scenario{}, err
	}
	svc.notifyInstructor(sc)
	return sc, nil
}

func (svc *service) QueryAll(ctx context.Context) ([]Scenario, error) {
	return svc.repo.QueryAllScenarios(ctx)
}

func (svc *service) GetByID(ctx context.Context, id int) (Scenario, error) {
	return svc.repo.GetScenarioByID(ctx, id)
}

// CheckText applies the scenario text policy: the configured max length
// and a near-duplicate check against already submitted scenarios.
func (svc *service) CheckText(ctx context.Context, text string) error {
	if max := svc.conf.Voting.MaxScenarioLen; max > 0 && utf8.RuneCountInString(text) > max {
		err := fmt.Errorf("scenario text cannot exceed %d characters", max)
		return core.NewValidationError(err, core.FieldError{Field: "text", Error: err.Error()})
	}

	existing, err := svc.repo.QueryAllScenarios(ctx)
	if err != nil {
		return err
	}
	for _, sc := range existing {
		if isNearDuplicate(text, sc.Text) {
			return core.NewValidationError(ErrScenarioExists, core.FieldError{Field: "text", Error: ErrScenarioExists.Error()})
		}
	}
	return nil
}

func (svc *service) Reset(ctx context.Context) error {
	return svc.repo.DeleteAllScenarios(ctx)
}

func (svc *service) notifyInstructor(sc Scenario) {
	if svc.conf.InstructorEmail == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Address: svc.conf.InstructorEmail}},
		Subject:      "New scenario submitted",
		TemplateName: "scenario-submitted",
		TemplateData: sc,
	})
}
