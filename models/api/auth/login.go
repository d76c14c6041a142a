package authapimodels

import (
	"net/mail"

	"github.com/pkg/errors"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	_, err := mail.ParseAddress(r.Email)
	if err != nil {
		return errors.New("почта имеет неправильный формат")
	}
	if r.Password == "" {
		return errors.New("не указан пароль")
	}
	return nil
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

type PasswordRecovery struct {
	Email string `json:"email"` // емайл для отправки письма с инструкцией, он же логин
}

func (r PasswordRecovery) Validate() error {
	_, err := mail.ParseAddress(r.Email)
	if err != nil {
		return errors.New("почта имеет неправильный формат")
	}
	return nil
}

type PasswordResetRequest struct {
	ResetCode   string `json:"reset_code"`
	NewPassword string `json:"new_password"`
}

func (r PasswordResetRequest) Validate() error {
	if r.ResetCode == "" {
		return errors.New("получен некорректный код для сброса")
	}
	if r.NewPassword == "" {
		return errors.New("не указан новый пароль")
	}
	return nil
}
