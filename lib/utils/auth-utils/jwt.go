package authutils

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// IsWellFormedToken - структурная проверка bearer-токена без проверки
// подписи: токен должен иметь многосегментную форму подписанного токена.
// Валидность подтверждает только сервер, первая же ошибка 401 -
// фактическая проверка.
func IsWellFormedToken(token string) bool {
	if strings.Count(token, ".") != 2 {
		return false
	}
	_, err := GetClaims(token)
	return err == nil
}

// GetClaims - чтение полезных полей токена без проверки подписи
func GetClaims(token string) (jwt.MapClaims, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	_, _, err := parser.ParseUnverified(token, claims)
	if err != nil {
		return nil, errors.Wrap(err, "токен имеет неправильный формат")
	}
	return claims, nil
}
