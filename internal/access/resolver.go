package access

import (
	"context"
	"fmt"

	"github.com/rahafha1/project-manager-api/internal/models"
)

// MembershipChecker reports whether a membership row exists.
type MembershipChecker interface {
	IsMember(ctx context.Context, projectID, userID uint64) (bool, error)
}

// Relationship is what a principal is to a project, and optionally to a task
// within it. A manager counts as a member for every decision, but the two
// facts are resolved independently.
type Relationship struct {
	Manager  bool
	Member   bool
	Assignee bool
}

// Participant reports whether the principal manages or belongs to the project.
func (r Relationship) Participant() bool {
	return r.Manager || r.Member
}

// Resolver answers relationship questions against the current store state.
type Resolver struct {
	members MembershipChecker
}

func NewResolver(members MembershipChecker) *Resolver {
	return &Resolver{members: members}
}

// IsManager reports whether p is the project's manager.
func (r *Resolver) IsManager(p Principal, project *models.Project) bool {
	return p.IsAuthenticated && project != nil && project.ManagerID == p.UserID
}

// IsMember reports whether p has a membership row on the project.
func (r *Resolver) IsMember(ctx context.Context, p Principal, project *models.Project) (bool, error) {
	if !p.IsAuthenticated || project == nil {
		return false, nil
	}
	ok, err := r.members.IsMember(ctx, project.ID, p.UserID)
	if err != nil {
		return false, fmt.Errorf("resolve membership: %w", err)
	}
	return ok, nil
}

// IsAssignee reports whether p is the task's assignee.
func (r *Resolver) IsAssignee(p Principal, task *models.Task) bool {
	return p.IsAuthenticated && task != nil && task.AssignedToID == p.UserID
}

// Relationship resolves all facts about p. The membership lookup is skipped
// when the principal is already known to be the manager.
func (r *Resolver) Relationship(ctx context.Context, p Principal, project *models.Project, task *models.Task) (Relationship, error) {
	rel := Relationship{
		Manager:  r.IsManager(p, project),
		Assignee: r.IsAssignee(p, task),
	}
	if rel.Manager {
		return rel, nil
	}

	member, err := r.IsMember(ctx, p, project)
	if err != nil {
		return Relationship{}, err
	}
	rel.Member = member
	return rel, nil
}
