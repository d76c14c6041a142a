package models

// ErrorKind - закрытая классификация ошибок шлюза.
// Любой неуспешный результат несет ровно один из этих видов.
type ErrorKind string

const (
	// ответ от сервера не получен
	ErrKindNetwork ErrorKind = "NETWORK_ERROR"
	// запрос отменен вызывающей стороной
	ErrKindCancelled ErrorKind = "CANCELLED"
	// нет учетных данных, запрос не отправлялся
	ErrKindUnauthenticated ErrorKind = "UNAUTHENTICATED"
	// сервер сообщил 401, сессия вычищена
	ErrKindSessionExpired ErrorKind = "SESSION_EXPIRED"
	// сервер сообщил 403
	ErrKindAccessDenied ErrorKind = "ACCESS_DENIED"
	// сервер сообщил 400 с ошибками по полям
	ErrKindValidationFailed ErrorKind = "VALIDATION_FAILED"
	// прочие неуспешные ответы сервера
	ErrKindRequestFailed ErrorKind = "REQUEST_FAILED"
)

var errorKindHumanName = map[ErrorKind]string{
	ErrKindNetwork:          "Сервис недоступен",
	ErrKindCancelled:        "Запрос отменен",
	ErrKindUnauthenticated:  "Требуется вход в систему",
	ErrKindSessionExpired:   "Сессия истекла",
	ErrKindAccessDenied:     "Доступ запрещен",
	ErrKindValidationFailed: "Некорректные данные",
	ErrKindRequestFailed:    "Не удалось выполнить запрос",
}

func (k ErrorKind) ToHuman() string {
	if human, exist := errorKindHumanName[k]; exist {
		return human
	}
	return string(k)
}

// IsFatal - только истекшая сессия и отсутствие учетных данных
// требуют глобального выхода, остальные ошибки локальны для вызова
func (k ErrorKind) IsFatal() bool {
	return k == ErrKindSessionExpired || k == ErrKindUnauthenticated
}
