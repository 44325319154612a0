package access

import "fmt"

// TaskMutationPolicy selects who besides the manager and assignee may modify
// a task.
type TaskMutationPolicy string

const (
	// TaskMutationBroad lets any project member modify tasks.
	TaskMutationBroad TaskMutationPolicy = "broad"
	// TaskMutationNarrow limits task modification to the manager and the assignee.
	TaskMutationNarrow TaskMutationPolicy = "narrow"
)

// SuperuserScope selects which checks the superuser override short-circuits.
type SuperuserScope string

const (
	// SuperuserEverywhere applies the override to visibility, task creation
	// and every object check.
	SuperuserEverywhere SuperuserScope = "all"
	// SuperuserObjectChecks applies the override only to object mutation
	// checks and the staff gate. Listings and task creation treat a superuser
	// like any other user.
	SuperuserObjectChecks SuperuserScope = "object_checks"
)

// Policy holds the configurable parts of the authorization model.
type Policy struct {
	TaskMutation TaskMutationPolicy
	Superuser    SuperuserScope
}

// DefaultPolicy is the broad task policy with a uniform superuser override.
func DefaultPolicy() Policy {
	return Policy{
		TaskMutation: TaskMutationBroad,
		Superuser:    SuperuserEverywhere,
	}
}

// ParsePolicy validates the raw configuration values.
func ParsePolicy(taskMutation, superuser string) (Policy, error) {
	p := Policy{
		TaskMutation: TaskMutationPolicy(taskMutation),
		Superuser:    SuperuserScope(superuser),
	}

	switch p.TaskMutation {
	case TaskMutationBroad, TaskMutationNarrow:
	default:
		return Policy{}, fmt.Errorf("unknown task mutation policy %q", taskMutation)
	}

	switch p.Superuser {
	case SuperuserEverywhere, SuperuserObjectChecks:
	default:
		return Policy{}, fmt.Errorf("unknown superuser scope %q", superuser)
	}

	return p, nil
}
