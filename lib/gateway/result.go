package gateway

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"hr-admin-console/models"
)

// Result - нормализованный исход любого вызова шлюза.
// Либо Success=true и Data, либо Success=false, Message и Kind -
// третьего не бывает, транспортные ошибки наружу не выходят.
type Result struct {
	Success bool
	Data    json.RawMessage
	Message string
	Kind    models.ErrorKind
}

func Ok(data json.RawMessage) Result {
	return Result{
		Success: true,
		Data:    data,
	}
}

func Fail(kind models.ErrorKind, message string) Result {
	if message == "" {
		message = kind.ToHuman()
	}
	return Result{
		Message: message,
		Kind:    kind,
	}
}

func (r Result) IsKind(kind models.ErrorKind) bool {
	return !r.Success && r.Kind == kind
}

// Decode - десериализация полезной нагрузки успешного результата
func (r Result) Decode(v interface{}) error {
	if !r.Success {
		return errors.Errorf("результат не содержит данных: %v", r.Message)
	}
	if len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return errors.Wrap(err, "ошибка десериализации ответа сервера")
	}
	return nil
}

// AsOutcome - разбиение результата на человекочитаемый отказ (hMsg)
// и системную ошибку (err) в соглашении обработчиков: отказы сервера
// по существу операции показываются пользователю, недоступность сети,
// отмена и истекшая сессия отдаются как ошибка
func (r Result) AsOutcome() (hMsg string, err error) {
	if r.Success {
		return "", nil
	}
	switch r.Kind {
	case models.ErrKindAccessDenied, models.ErrKindValidationFailed, models.ErrKindRequestFailed:
		return r.Message, nil
	default:
		if r.Message == "" || r.Message == r.Kind.ToHuman() {
			return "", errors.New(r.Kind.ToHuman())
		}
		return "", errors.Errorf("%v: %v", r.Kind.ToHuman(), r.Message)
	}
}

// envelope - контракт конверта ответа сервера, проверяется один раз
// на границе шлюза
type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// flattenFieldErrors - карта ошибок по полям склеивается в одно сообщение,
// порядок полей фиксирован
func flattenFieldErrors(fieldErrors map[string]string) string {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%v: %v", field, fieldErrors[field]))
	}
	return strings.Join(parts, "; ")
}
