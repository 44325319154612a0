package access

// Resource names the object family a dispatch table covers.
type Resource string

const (
	ResourceProject Resource = "project"
	ResourceTask    Resource = "task"
	ResourceAdmin   Resource = "admin"
)

// Action is the operation a request performs on a resource.
type Action string

const (
	ActionList          Action = "list"
	ActionRetrieve      Action = "retrieve"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionDestroy       Action = "destroy"

	ActionListMembers  Action = "list_members"
	ActionAddMember    Action = "add_member"
	ActionRemoveMember Action = "remove_member"
	ActionSuggestTasks Action = "suggest_tasks"

	ActionListUsers    Action = "list_users"
	ActionUpdateUser   Action = "update_user"
	ActionListProjects Action = "list_projects"
)

// requirement is the rule an action maps to.
type requirement int

const (
	// requireDeny is the zero value so that a missing table entry denies.
	requireDeny requirement = iota
	// requireAuthenticated admits any authenticated principal.
	requireAuthenticated
	// requireVisible admits anyone who could load the object; the visibility
	// scope already did the filtering.
	requireVisible
	// requireManager admits the project manager.
	requireManager
	// requireParticipant admits the manager or a member on an existing object.
	requireParticipant
	// requireContributor is the creation guard: manager or member of the
	// referenced project, evaluated before any row exists.
	requireContributor
	// requireTaskEditor admits the manager, the assignee and, under the broad
	// policy, any member.
	requireTaskEditor
	// requireStaff is the administrative gate.
	requireStaff
)

var requirementNames = map[requirement]string{
	requireDeny:          "deny",
	requireAuthenticated: "authenticated",
	requireVisible:       "visible",
	requireManager:       "manager",
	requireParticipant:   "participant",
	requireContributor:   "contributor",
	requireTaskEditor:    "task_editor",
	requireStaff:         "staff",
}

func (r requirement) String() string {
	if name, ok := requirementNames[r]; ok {
		return name
	}
	return "unknown"
}

// needsRelationship reports whether evaluating r requires store reads.
func (r requirement) needsRelationship() bool {
	switch r {
	case requireManager, requireParticipant, requireContributor, requireTaskEditor:
		return true
	}
	return false
}

// superuserBypass reports whether the superuser override applies to r under
// the given scope. Visibility and creation follow the scope; object checks
// and the staff gate always honor it.
func (r requirement) superuserBypass(scope SuperuserScope) bool {
	switch r {
	case requireVisible, requireContributor:
		return scope == SuperuserEverywhere
	case requireManager, requireParticipant, requireTaskEditor, requireStaff:
		return true
	}
	return false
}

var projectRules = map[Action]requirement{
	ActionList:          requireAuthenticated,
	ActionCreate:        requireAuthenticated,
	ActionRetrieve:      requireVisible,
	ActionListMembers:   requireVisible,
	ActionUpdate:        requireManager,
	ActionPartialUpdate: requireManager,
	ActionDestroy:       requireManager,
	ActionAddMember:     requireManager,
	ActionRemoveMember:  requireManager,
	ActionSuggestTasks:  requireContributor,
}

var taskRules = map[Action]requirement{
	ActionList:          requireAuthenticated,
	ActionRetrieve:      requireParticipant,
	ActionCreate:        requireContributor,
	ActionUpdate:        requireTaskEditor,
	ActionPartialUpdate: requireTaskEditor,
	ActionDestroy:       requireTaskEditor,
}

var adminRules = map[Action]requirement{
	ActionListUsers:    requireStaff,
	ActionUpdateUser:   requireStaff,
	ActionListProjects: requireStaff,
}

// allows is the pure decision for one requirement. It reads no state.
func allows(policy Policy, p Principal, req requirement, rel Relationship) bool {
	if !p.IsAuthenticated {
		return false
	}
	if p.IsSuperuser && req.superuserBypass(policy.Superuser) {
		return true
	}

	switch req {
	case requireAuthenticated, requireVisible:
		return true
	case requireManager:
		return rel.Manager
	case requireParticipant, requireContributor:
		return rel.Participant()
	case requireTaskEditor:
		if rel.Manager || rel.Assignee {
			return true
		}
		return policy.TaskMutation == TaskMutationBroad && rel.Member
	case requireStaff:
		return p.IsStaff
	}
	return false
}
