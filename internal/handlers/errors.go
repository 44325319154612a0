package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rahafha1/project-manager-api/internal/access"
	"github.com/rahafha1/project-manager-api/internal/constants"
	apierrors "github.com/rahafha1/project-manager-api/internal/errors"
	"github.com/rahafha1/project-manager-api/internal/services"
)

// respondError maps a service error onto the API error envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, access.ErrUnauthenticated):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, access.ErrForbidden):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrUserInactive):
		apierrors.Unauthorized(c, err.Error())

	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrNameTooLong),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrTaskProjectMissing),
		errors.Is(err, services.ErrTaskProjectImmutable),
		errors.Is(err, services.ErrInvalidTaskAssignee),
		errors.Is(err, services.ErrMemberUserMissing),
		errors.Is(err, services.ErrCannotChangeOwnFlags),
		errors.Is(err, services.ErrAITextRequired):
		apierrors.BadRequest(c, err.Error())

	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrAlreadyMember):
		apierrors.Conflict(c, err.Error())

	case errors.Is(err, services.ErrAIServiceNotConfigured),
		errors.Is(err, services.ErrAIUnavailable):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks):
		apierrors.Unprocessable(c, err.Error())

	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}
