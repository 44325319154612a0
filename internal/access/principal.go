package access

import "github.com/rahafha1/project-manager-api/internal/models"

// Principal is the authenticated user a request acts as.
type Principal struct {
	UserID          uint64
	IsSuperuser     bool
	IsStaff         bool
	IsAuthenticated bool
}

// PrincipalFromUser builds the principal for a loaded, active user.
func PrincipalFromUser(user *models.User) Principal {
	if user == nil || !user.IsActive {
		return Principal{}
	}
	return Principal{
		UserID:          user.ID,
		IsSuperuser:     user.IsSuperuser,
		IsStaff:         user.IsStaff,
		IsAuthenticated: true,
	}
}
