package access

import (
	"context"
	"errors"

	"github.com/rahafha1/project-manager-api/internal/metrics"
	"github.com/rahafha1/project-manager-api/internal/models"
	"go.uber.org/zap"
)

var (
	// ErrUnauthenticated is returned when a check runs without a principal.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the principal may not perform the action.
	ErrForbidden = errors.New("permission denied")
)

// Engine evaluates actions against the dispatch tables. Every call reads the
// current relationship state; nothing is cached between calls.
type Engine struct {
	policy   Policy
	resolver *Resolver
	log      *zap.SugaredLogger
}

func NewEngine(policy Policy, resolver *Resolver, log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{
		policy:   policy,
		resolver: resolver,
		log:      log,
	}
}

// Policy returns the policy the engine was built with.
func (e *Engine) Policy() Policy {
	return e.policy
}

// AuthorizeProject checks a project action. project may be nil for
// collection actions.
func (e *Engine) AuthorizeProject(ctx context.Context, p Principal, action Action, project *models.Project) error {
	return e.authorize(ctx, ResourceProject, projectRules, p, action, project, nil)
}

// AuthorizeTask checks a task action. The authorization context is always
// the task's project.
func (e *Engine) AuthorizeTask(ctx context.Context, p Principal, action Action, project *models.Project, task *models.Task) error {
	return e.authorize(ctx, ResourceTask, taskRules, p, action, project, task)
}

// AuthorizeTaskCreate is the creation guard. It must run before the task row
// is written.
func (e *Engine) AuthorizeTaskCreate(ctx context.Context, p Principal, project *models.Project) error {
	return e.authorize(ctx, ResourceTask, taskRules, p, ActionCreate, project, nil)
}

// AuthorizeAdmin checks the staff gate for an administrative action.
func (e *Engine) AuthorizeAdmin(p Principal, action Action) error {
	return e.authorize(context.Background(), ResourceAdmin, adminRules, p, action, nil, nil)
}

func (e *Engine) authorize(
	ctx context.Context,
	resource Resource,
	rules map[Action]requirement,
	p Principal,
	action Action,
	project *models.Project,
	task *models.Task,
) error {
	if !p.IsAuthenticated {
		metrics.RecordDecision(string(resource), string(action), metrics.OutcomeUnauthenticated)
		return ErrUnauthenticated
	}

	req := rules[action]

	var rel Relationship
	if req.needsRelationship() && !(p.IsSuperuser && req.superuserBypass(e.policy.Superuser)) {
		var err error
		rel, err = e.resolver.Relationship(ctx, p, project, task)
		if err != nil {
			metrics.RecordDecision(string(resource), string(action), metrics.OutcomeError)
			return err
		}
	}

	if !allows(e.policy, p, req, rel) {
		e.log.Debugw("authorization denied",
			"resource", resource,
			"action", action,
			"requirement", req.String(),
			"user_id", p.UserID,
		)
		metrics.RecordDecision(string(resource), string(action), metrics.OutcomeDenied)
		return ErrForbidden
	}

	metrics.RecordDecision(string(resource), string(action), metrics.OutcomeAllowed)
	return nil
}
