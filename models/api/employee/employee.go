package employeeapimodels

import (
	"net/mail"

	"github.com/pkg/errors"

	"hr-admin-console/models"
)

type RegisterData struct {
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Password   string          `json:"password"`
	EmployeeID string          `json:"employeeId"`
	Role       models.UserRole `json:"role"`
	Department string          `json:"department"`
}

func (r RegisterData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано имя сотрудника")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("почта имеет неправильный формат")
	}
	if r.Password == "" {
		return errors.New("не указан пароль")
	}
	if r.EmployeeID == "" {
		return errors.New("не указан табельный номер")
	}
	if r.Role == "" {
		return errors.New("не указана роль")
	}
	return nil
}

// PhotoAttachment - фото сотрудника, отправляется multipart-частью
type PhotoAttachment struct {
	FileName string
	Body     []byte
}
