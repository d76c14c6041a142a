package authapimodels

import (
	"hr-admin-console/models"
)

// UserView - запись личности, выдаваемая сервером при входе
// и по запросу /auth/me
type UserView struct {
	ID         string          `json:"_id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	EmployeeID string          `json:"employeeId"`
	Role       models.UserRole `json:"role"`
	Department string          `json:"department"`
	IsVerified bool            `json:"isVerified"`
}

func (u UserView) GetDisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
