package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	sessionstore "hr-admin-console/lib/session/store"
	"hr-admin-console/models"
)

// Provider - единый контракт выполнения запросов к бэкенду.
// Подкладывает bearer-токен из хранилища сессии, сериализует тело,
// классифицирует ответ в закрытый набор ошибок (models.ErrorKind)
// и при 401 вычищает сессию до возврата результата вызывающему.
type Provider interface {
	Do(ctx context.Context, route string, opts RequestOpts) Result
	Get(ctx context.Context, route string, query url.Values) Result
	Post(ctx context.Context, route string, body interface{}) Result
	Put(ctx context.Context, route string, body interface{}) Result
	Delete(ctx context.Context, route string) Result
}

type RequestOpts struct {
	Method    string
	Body      interface{}       // сериализуется в JSON
	Multipart *MultipartBody    // взаимоисключающе с Body
	Headers   map[string]string
	Query     url.Values
	// NoAuth - маршрут из неавторизованного набора
	// (вход, запрос и завершение сброса пароля)
	NoAuth bool
}

type MultipartBody struct {
	Fields map[string]string
	Files  []MultipartFile
}

type MultipartFile struct {
	Field    string
	FileName string
	Body     []byte
}

func NewInstance(store sessionstore.Provider, httpClient *http.Client) Provider {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &impl{
		store:      store,
		httpClient: httpClient,
	}
}

type impl struct {
	store      sessionstore.Provider
	httpClient *http.Client
}

func (i impl) Get(ctx context.Context, route string, query url.Values) Result {
	return i.Do(ctx, route, RequestOpts{Method: http.MethodGet, Query: query})
}

func (i impl) Post(ctx context.Context, route string, body interface{}) Result {
	return i.Do(ctx, route, RequestOpts{Method: http.MethodPost, Body: body})
}

func (i impl) Put(ctx context.Context, route string, body interface{}) Result {
	return i.Do(ctx, route, RequestOpts{Method: http.MethodPut, Body: body})
}

func (i impl) Delete(ctx context.Context, route string) Result {
	return i.Do(ctx, route, RequestOpts{Method: http.MethodDelete})
}

func (i impl) Do(ctx context.Context, route string, opts RequestOpts) Result {
	requestID := uuid.NewString()
	logger := log.
		WithField("request_id", requestID).
		WithField("gateway_request", fmt.Sprintf("%v %v", opts.Method, route))

	token := ""
	if !opts.NoAuth {
		token = i.store.Token()
		if token == "" {
			// учетных данных нет - до сети не доходим
			logger.Warn("вызов авторизованного маршрута без учетных данных")
			return Fail(models.ErrKindUnauthenticated, "")
		}
	}

	r, err := i.buildRequest(ctx, route, opts)
	if err != nil {
		logger.WithError(err).Error("ошибка формирования запроса")
		return Fail(models.ErrKindRequestFailed, err.Error())
	}
	r.Header.Set("X-Request-ID", requestID)
	if token != "" {
		r.Header.Set("Authorization", fmt.Sprintf("Bearer %v", token))
	}

	response, err := i.httpClient.Do(r)
	if err != nil {
		if ctx.Err() != nil {
			logger.Info("запрос отменен вызывающей стороной")
			return Fail(models.ErrKindCancelled, "")
		}
		logger.WithError(err).Error("ошибка отправки запроса")
		return Fail(models.ErrKindNetwork, "")
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		logger.WithError(err).Error("ошибка чтения тела ответа")
		return Fail(models.ErrKindNetwork, "")
	}
	logger = logger.WithField("response_status_code", response.StatusCode)

	return i.classify(logger, response, responseBody)
}

func (i impl) buildRequest(ctx context.Context, route string, opts RequestOpts) (*http.Request, error) {
	if len(opts.Query) > 0 {
		route = route + "?" + opts.Query.Encode()
	}

	var bodyReader io.Reader
	contentType := ""
	switch {
	case opts.Multipart != nil:
		// Content-Type с границей формирует multipart.Writer,
		// вручную заголовок на multipart-теле не выставляется
		buf := &bytes.Buffer{}
		writer := multipart.NewWriter(buf)
		for field, value := range opts.Multipart.Fields {
			if err := writer.WriteField(field, value); err != nil {
				return nil, errors.Wrap(err, "ошибка записи поля multipart-формы")
			}
		}
		for _, file := range opts.Multipart.Files {
			part, err := writer.CreateFormFile(file.Field, file.FileName)
			if err != nil {
				return nil, errors.Wrap(err, "ошибка создания файла в multipart-форме")
			}
			if _, err = part.Write(file.Body); err != nil {
				return nil, errors.Wrap(err, "ошибка записи файла в multipart-форму")
			}
		}
		if err := writer.Close(); err != nil {
			return nil, errors.Wrap(err, "ошибка закрытия multipart-формы")
		}
		bodyReader = buf
		contentType = writer.FormDataContentType()
	case opts.Body != nil:
		body, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка сериализации тела запроса")
		}
		bodyReader = bytes.NewReader(body)
		contentType = "application/json"
	}

	r, err := http.NewRequestWithContext(ctx, opts.Method, route, bodyReader)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания запроса")
	}
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	r.Header.Set("Accept", "application/json")
	for name, value := range opts.Headers {
		r.Header.Set(name, value)
	}
	return r, nil
}

// classify - единственная точка, где статус ответа превращается
// в нормализованный Result
func (i impl) classify(logger *log.Entry, response *http.Response, responseBody []byte) Result {
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if !isJSONResponse(response) || len(responseBody) == 0 {
			return Ok(nil)
		}
		env := envelope{}
		if err := json.Unmarshal(responseBody, &env); err != nil {
			logger.WithError(err).Error("ответ сервера не соответствует контракту конверта")
			return Fail(models.ErrKindRequestFailed, "ответ сервера не соответствует контракту")
		}
		return Ok(env.Data)
	}

	env := envelope{}
	if isJSONResponse(response) && len(responseBody) > 0 {
		if err := json.Unmarshal(responseBody, &env); err != nil {
			logger.WithError(err).Warn("тело ответа с ошибкой не разобрано")
		}
	}

	switch response.StatusCode {
	case http.StatusUnauthorized:
		// сессия вычищается до возврата результата, следующее чтение
		// состояния уже видит разлогиненное состояние
		if err := i.store.Clear(); err != nil {
			logger.WithError(err).Error("ошибка очистки сессии по ответу 401")
		}
		logger.Warn("сервер сообщил об истекшей сессии")
		return Fail(models.ErrKindSessionExpired, env.Message)
	case http.StatusForbidden:
		logger.Warn("сервер отказал в доступе")
		return Fail(models.ErrKindAccessDenied, env.Message)
	case http.StatusBadRequest:
		if len(env.Errors) > 0 {
			return Fail(models.ErrKindValidationFailed, flattenFieldErrors(env.Errors))
		}
		return Fail(models.ErrKindRequestFailed, requestFailedMessage(env, response))
	default:
		logger.Warn("некорректный ответ сервера")
		return Fail(models.ErrKindRequestFailed, requestFailedMessage(env, response))
	}
}

func requestFailedMessage(env envelope, response *http.Response) string {
	if env.Message != "" {
		return env.Message
	}
	return fmt.Sprintf("HTTP %v: %v", response.StatusCode, http.StatusText(response.StatusCode))
}

func isJSONResponse(response *http.Response) bool {
	return strings.Contains(response.Header.Get("Content-Type"), "application/json")
}
