package employeehandler

import (
	"context"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"hr-admin-console/lib/gateway"
	sessionhandler "hr-admin-console/lib/session"
	initchecker "hr-admin-console/lib/utils/init-checker"
	"hr-admin-console/models"
	authapimodels "hr-admin-console/models/api/auth"
	employeeapimodels "hr-admin-console/models/api/employee"
)

// Provider - административные операции над учетными записями сотрудников
type Provider interface {
	// Register - без фото тело уходит как JSON, с фото - multipart-формой
	Register(ctx context.Context, data employeeapimodels.RegisterData, photo *employeeapimodels.PhotoAttachment) (user authapimodels.UserView, hMsg string, err error)
	ResetDevice(ctx context.Context, employeeID string) (hMsg string, err error)
	Verify(ctx context.Context, userID string) (hMsg string, err error)
}

var Instance Provider

func NewHandler(apiHost string, gw gateway.Provider, session sessionhandler.Provider) {
	Instance = NewInstance(apiHost, gw, session)
}

func NewInstance(apiHost string, gw gateway.Provider, session sessionhandler.Provider) Provider {
	instance := impl{
		apiHost: apiHost,
		gateway: gw,
		session: session,
	}
	initchecker.CheckInit(
		"gateway", instance.gateway,
		"session", instance.session,
	)
	return instance
}

type impl struct {
	apiHost string
	gateway gateway.Provider
	session sessionhandler.Provider
}

const (
	registerPath    string = "%v/auth/register"
	resetDevicePath string = "%v/auth/reset-device/%v"
	verifyPath      string = "%v/auth/verify/%v"
)

func (i impl) Register(ctx context.Context, data employeeapimodels.RegisterData, photo *employeeapimodels.PhotoAttachment) (user authapimodels.UserView, hMsg string, err error) {
	if vErr := data.Validate(); vErr != nil {
		return authapimodels.UserView{}, vErr.Error(), nil
	}
	if !i.session.IsAllowed(models.ConsoleRoles...) {
		return authapimodels.UserView{}, "недостаточно прав для регистрации сотрудника", nil
	}

	opts := gateway.RequestOpts{
		Method: http.MethodPost,
	}
	if photo == nil {
		opts.Body = data
	} else {
		opts.Multipart = &gateway.MultipartBody{
			Fields: map[string]string{
				"name":       data.Name,
				"email":      data.Email,
				"password":   data.Password,
				"employeeId": data.EmployeeID,
				"role":       string(data.Role),
				"department": data.Department,
			},
			Files: []gateway.MultipartFile{
				{Field: "photo", FileName: photo.FileName, Body: photo.Body},
			},
		}
	}
	// регистрация доводится до ответа сервера, отмена вызывающего
	// не прерывает начатый запрос
	res := i.gateway.Do(context.WithoutCancel(ctx), fmt.Sprintf(registerPath, i.apiHost), opts)
	if !res.Success {
		hMsg, err = res.AsOutcome()
		return authapimodels.UserView{}, hMsg, err
	}
	if err = res.Decode(&user); err != nil {
		return authapimodels.UserView{}, "", err
	}
	log.
		WithField("user_id", user.ID).
		WithField("employee_id", user.EmployeeID).
		Info("зарегистрирован сотрудник")
	return user, "", nil
}

func (i impl) ResetDevice(ctx context.Context, employeeID string) (hMsg string, err error) {
	res := i.gateway.Put(context.WithoutCancel(ctx), fmt.Sprintf(resetDevicePath, i.apiHost, employeeID), nil)
	if !res.Success {
		return res.AsOutcome()
	}
	log.WithField("employee_id", employeeID).Info("сброшена привязка устройства сотрудника")
	return "", nil
}

func (i impl) Verify(ctx context.Context, userID string) (hMsg string, err error) {
	res := i.gateway.Put(context.WithoutCancel(ctx), fmt.Sprintf(verifyPath, i.apiHost, userID), nil)
	if !res.Success {
		return res.AsOutcome()
	}
	log.WithField("user_id", userID).Info("учетная запись сотрудника подтверждена")
	return "", nil
}
