package services

import "errors"

// Authentication
var (
	ErrUsernameRequired   = errors.New("username is required")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is disabled")
)

// Projects and membership
var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrNameRequired      = errors.New("name is required")
	ErrNameTooLong       = errors.New("name is too long")
	ErrAlreadyMember     = errors.New("user is already part of the project")
	ErrMemberNotFound    = errors.New("user is not a member of the project")
	ErrMemberUserMissing = errors.New("user to add does not exist")
)

// Tasks
var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTitleRequired        = errors.New("title is required")
	ErrTitleTooLong         = errors.New("title is too long")
	ErrInvalidStatus        = errors.New("invalid task status")
	ErrTaskProjectMissing   = errors.New("referenced project does not exist")
	ErrTaskProjectImmutable = errors.New("a task cannot be moved to another project")
	ErrInvalidTaskAssignee  = errors.New("assignee must be the project manager or a project member")
)

// Administration
var (
	ErrCannotChangeOwnFlags = errors.New("staff cannot change their own account flags")
)

// AI suggestions
var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAIUnavailable          = errors.New("AI service is temporarily unavailable")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
	ErrAITextRequired         = errors.New("text is required")
)
