package sessionhandler

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	log "github.com/sirupsen/logrus"

	"hr-admin-console/lib/gateway"
	sessionstore "hr-admin-console/lib/session/store"
	authutils "hr-admin-console/lib/utils/auth-utils"
	initchecker "hr-admin-console/lib/utils/init-checker"
	"hr-admin-console/models"
	authapimodels "hr-admin-console/models/api/auth"
)

// Provider - контроллер жизненного цикла сессии.
// Единственный компонент, который пишет в хранилище сессии
// (вход, выход, восстановление); шлюз вычищает его только по 401.
type Provider interface {
	Login(ctx context.Context, request authapimodels.LoginRequest) (hMsg string, err error)
	Logout(ctx context.Context)
	RequestPasswordReset(ctx context.Context, request authapimodels.PasswordRecovery) (hMsg string, err error)
	ResetPassword(ctx context.Context, request authapimodels.PasswordResetRequest) (hMsg string, err error)
	RestoreSession(ctx context.Context) models.SessionState
	RefreshMe(ctx context.Context) (hMsg string, err error)
	IsAllowed(requiredRoles ...models.UserRole) bool
	CurrentUser() *authapimodels.UserView
	State() models.SessionState
}

var Instance Provider

func NewHandler(apiHost string, gw gateway.Provider, store sessionstore.Provider, verifyOnRestore bool) {
	Instance = NewInstance(apiHost, gw, store, verifyOnRestore)
}

func NewInstance(apiHost string, gw gateway.Provider, store sessionstore.Provider, verifyOnRestore bool) Provider {
	instance := &impl{
		apiHost:         apiHost,
		gateway:         gw,
		store:           store,
		verifyOnRestore: verifyOnRestore,
		state:           models.SessionStateAnonymous,
	}
	initchecker.CheckInit(
		"gateway", instance.gateway,
		"store", instance.store,
	)
	return instance
}

type impl struct {
	apiHost         string
	gateway         gateway.Provider
	store           sessionstore.Provider
	verifyOnRestore bool

	mu    sync.Mutex
	state models.SessionState
}

const (
	loginPath          string = "%v/auth/login"
	logoutPath         string = "%v/auth/logout"
	mePath             string = "%v/auth/me"
	forgotPasswordPath string = "%v/auth/forgot-password"
	resetPasswordPath  string = "%v/auth/reset-password"
)

func (i *impl) Login(ctx context.Context, request authapimodels.LoginRequest) (hMsg string, err error) {
	logger := log.WithField("login_email", request.Email)
	if vErr := request.Validate(); vErr != nil {
		return vErr.Error(), nil
	}
	i.setState(models.SessionStateAuthenticating)

	res := i.gateway.Do(ctx, fmt.Sprintf(loginPath, i.apiHost), gateway.RequestOpts{
		Method: http.MethodPost,
		Body:   request,
		NoAuth: true,
	})
	if !res.Success {
		i.setState(models.SessionStateAnonymous)
		return res.AsOutcome()
	}

	loginResp := authapimodels.LoginResponse{}
	if err = res.Decode(&loginResp); err != nil {
		i.setState(models.SessionStateAnonymous)
		return "", err
	}
	// серверный вызов успешен, но консоль принимает только
	// административные роли - защита в глубину, не замена серверной проверки
	if !roleAllowed(loginResp.User.Role, models.ConsoleRoles) {
		logger.
			WithField("role", loginResp.User.Role).
			Warn("отказ во входе: роль не имеет доступа к консоли")
		i.setState(models.SessionStateAnonymous)
		return "роль не имеет доступа к административной консоли", nil
	}
	if !authutils.IsWellFormedToken(loginResp.Token) {
		logger.Warn("сервер вернул токен неправильной формы")
		i.setState(models.SessionStateAnonymous)
		return "получен некорректный токен", nil
	}

	if err = i.store.Set(loginResp.Token, loginResp.User); err != nil {
		i.setState(models.SessionStateAnonymous)
		return "", err
	}
	i.setState(models.SessionStateAuthenticated)
	logger.
		WithField("user_id", loginResp.User.ID).
		WithField("role", loginResp.User.Role).
		Info("выполнен вход в консоль")
	return "", nil
}

// Logout - выход это локальная гарантия: сессия вычищается
// независимо от исхода серверного вызова
func (i *impl) Logout(ctx context.Context) {
	res := i.gateway.Post(ctx, fmt.Sprintf(logoutPath, i.apiHost), nil)
	if !res.Success {
		log.
			WithField("error_kind", res.Kind).
			WithField("message", res.Message).
			Warn("серверный выход не подтвержден, сессия вычищена локально")
	}
	if err := i.store.Clear(); err != nil {
		log.WithError(err).Error("ошибка очистки хранилища сессии при выходе")
	}
	i.setState(models.SessionStateAnonymous)
}

// RequestPasswordReset - запрос письма с кодом сброса, маршрут
// из неавторизованного набора
func (i *impl) RequestPasswordReset(ctx context.Context, request authapimodels.PasswordRecovery) (hMsg string, err error) {
	if vErr := request.Validate(); vErr != nil {
		return vErr.Error(), nil
	}
	res := i.gateway.Do(ctx, fmt.Sprintf(forgotPasswordPath, i.apiHost), gateway.RequestOpts{
		Method: http.MethodPost,
		Body:   request,
		NoAuth: true,
	})
	if !res.Success {
		return res.AsOutcome()
	}
	log.WithField("login_email", request.Email).Info("запрошен сброс пароля")
	return "", nil
}

func (i *impl) ResetPassword(ctx context.Context, request authapimodels.PasswordResetRequest) (hMsg string, err error) {
	if vErr := request.Validate(); vErr != nil {
		return vErr.Error(), nil
	}
	res := i.gateway.Do(ctx, fmt.Sprintf(resetPasswordPath, i.apiHost), gateway.RequestOpts{
		Method: http.MethodPost,
		Body:   request,
		NoAuth: true,
	})
	if !res.Success {
		return res.AsOutcome()
	}
	log.Info("пароль сброшен по коду восстановления")
	return "", nil
}

// RestoreSession - восстановление при старте процесса. Сохраненная пара
// принимается по структурной проверке токена; действительность подтверждает
// либо запрос /auth/me (при включенной сверке), либо первый же ответ 401.
func (i *impl) RestoreSession(ctx context.Context) models.SessionState {
	token := i.store.Token()
	if token == "" || i.store.User() == nil {
		i.setState(models.SessionStateAnonymous)
		return models.SessionStateAnonymous
	}
	if !authutils.IsWellFormedToken(token) {
		log.Warn("сохраненный токен имеет неправильную форму, сессия вычищена")
		if err := i.store.Clear(); err != nil {
			log.WithError(err).Error("ошибка очистки хранилища сессии")
		}
		i.setState(models.SessionStateAnonymous)
		return models.SessionStateAnonymous
	}
	if i.verifyOnRestore {
		res := i.gateway.Get(ctx, fmt.Sprintf(mePath, i.apiHost), nil)
		if res.IsKind(models.ErrKindSessionExpired) || res.IsKind(models.ErrKindUnauthenticated) {
			// хранилище уже вычищено шлюзом
			i.setState(models.SessionStateAnonymous)
			return models.SessionStateAnonymous
		}
		if res.Success {
			if err := i.applyIdentity(token, res); err != nil {
				log.WithError(err).Error("ошибка обновления записи личности при восстановлении")
			}
		}
		// недоступность сервера не мешает восстановлению - проверит
		// первый рабочий вызов
	}
	i.setState(models.SessionStateAuthenticated)
	return models.SessionStateAuthenticated
}

// RefreshMe - обновление кешированной записи личности
func (i *impl) RefreshMe(ctx context.Context) (hMsg string, err error) {
	token := i.store.Token()
	res := i.gateway.Get(ctx, fmt.Sprintf(mePath, i.apiHost), nil)
	if !res.Success {
		if res.Kind.IsFatal() {
			i.setState(models.SessionStateAnonymous)
		}
		return res.AsOutcome()
	}
	if err = i.applyIdentity(token, res); err != nil {
		return "", err
	}
	return "", nil
}

// IsAllowed - ролевой предикат, пересчитывается на каждый вызов
// по текущей записи личности
func (i *impl) IsAllowed(requiredRoles ...models.UserRole) bool {
	user := i.store.User()
	if user == nil {
		return false
	}
	return roleAllowed(user.Role, requiredRoles)
}

func (i *impl) CurrentUser() *authapimodels.UserView {
	return i.store.User()
}

func (i *impl) State() models.SessionState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

func (i *impl) setState(state models.SessionState) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.state = state
}

func (i *impl) applyIdentity(token string, res gateway.Result) error {
	user := authapimodels.UserView{}
	if err := res.Decode(&user); err != nil {
		return err
	}
	if user.ID == "" {
		return nil
	}
	return i.store.Set(token, user)
}

func roleAllowed(role models.UserRole, allowed []models.UserRole) bool {
	for _, allowedRole := range allowed {
		if role == allowedRole {
			return true
		}
	}
	return false
}
