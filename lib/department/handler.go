package departmenthandler

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"hr-admin-console/lib/gateway"
	initchecker "hr-admin-console/lib/utils/init-checker"
	departmentapimodels "hr-admin-console/models/api/department"
)

// Provider - справочник подразделений. Список - справочные данные,
// держится в кеше с коротким TTL; любая мутация сбрасывает кеш.
// Состояние заявок через этот кеш не проходит.
type Provider interface {
	List(ctx context.Context) (list []departmentapimodels.DepartmentView, hMsg string, err error)
	Get(ctx context.Context, id string) (item departmentapimodels.DepartmentView, hMsg string, err error)
	Create(ctx context.Context, data departmentapimodels.DepartmentData) (id string, hMsg string, err error)
	Update(ctx context.Context, id string, data departmentapimodels.DepartmentData) (hMsg string, err error)
	Delete(ctx context.Context, id string) (hMsg string, err error)
	ToggleStatus(ctx context.Context, id string) (isActive bool, hMsg string, err error)
}

var Instance Provider

func NewHandler(apiHost string, gw gateway.Provider) {
	Instance = NewInstance(apiHost, gw)
}

func NewInstance(apiHost string, gw gateway.Provider) Provider {
	instance := &impl{
		apiHost: apiHost,
		gateway: gw,
		cache:   cache.New(listCacheTTL, listCacheTTL),
	}
	initchecker.CheckInit(
		"gateway", instance.gateway,
	)
	return instance
}

type impl struct {
	apiHost string
	gateway gateway.Provider
	cache   *cache.Cache
}

const (
	departmentsPath  string = "%v/departments"
	departmentPath   string = "%v/departments/%v"
	toggleStatusPath string = "%v/departments/%v/toggle-status"

	listCacheKey string = "departments-list"
	listCacheTTL        = 5 * time.Minute
)

func (i *impl) List(ctx context.Context) (list []departmentapimodels.DepartmentView, hMsg string, err error) {
	cached, ok := i.cache.Get(listCacheKey)
	if ok {
		return cached.([]departmentapimodels.DepartmentView), "", nil
	}
	res := i.gateway.Get(ctx, fmt.Sprintf(departmentsPath, i.apiHost), nil)
	if !res.Success {
		hMsg, err = res.AsOutcome()
		return nil, hMsg, err
	}
	list = []departmentapimodels.DepartmentView{}
	if err = res.Decode(&list); err != nil {
		return nil, "", err
	}
	i.cache.Set(listCacheKey, list, listCacheTTL)
	return list, "", nil
}

func (i *impl) Get(ctx context.Context, id string) (item departmentapimodels.DepartmentView, hMsg string, err error) {
	res := i.gateway.Get(ctx, fmt.Sprintf(departmentPath, i.apiHost, id), nil)
	if !res.Success {
		hMsg, err = res.AsOutcome()
		return departmentapimodels.DepartmentView{}, hMsg, err
	}
	if err = res.Decode(&item); err != nil {
		return departmentapimodels.DepartmentView{}, "", err
	}
	return item, "", nil
}

func (i *impl) Create(ctx context.Context, data departmentapimodels.DepartmentData) (id string, hMsg string, err error) {
	if vErr := data.Validate(); vErr != nil {
		return "", vErr.Error(), nil
	}
	// мутации справочника доводятся до ответа сервера
	res := i.gateway.Post(context.WithoutCancel(ctx), fmt.Sprintf(departmentsPath, i.apiHost), data)
	if !res.Success {
		hMsg, err = res.AsOutcome()
		return "", hMsg, err
	}
	created := departmentapimodels.DepartmentView{}
	if err = res.Decode(&created); err != nil {
		return "", "", err
	}
	i.cache.Delete(listCacheKey)
	log.
		WithField("department_name", data.Name).
		WithField("rec_id", created.ID).
		Info("создано подразделение")
	return created.ID, "", nil
}

func (i *impl) Update(ctx context.Context, id string, data departmentapimodels.DepartmentData) (hMsg string, err error) {
	if vErr := data.Validate(); vErr != nil {
		return vErr.Error(), nil
	}
	res := i.gateway.Put(context.WithoutCancel(ctx), fmt.Sprintf(departmentPath, i.apiHost, id), data)
	if !res.Success {
		return res.AsOutcome()
	}
	i.cache.Delete(listCacheKey)
	log.WithField("rec_id", id).Info("обновлено подразделение")
	return "", nil
}

func (i *impl) Delete(ctx context.Context, id string) (hMsg string, err error) {
	res := i.gateway.Delete(context.WithoutCancel(ctx), fmt.Sprintf(departmentPath, i.apiHost, id))
	if !res.Success {
		return res.AsOutcome()
	}
	i.cache.Delete(listCacheKey)
	log.WithField("rec_id", id).Info("удалено подразделение")
	return "", nil
}

// ToggleStatus - переключение активности, живет отдельно от
// редактирования карточки подразделения
func (i *impl) ToggleStatus(ctx context.Context, id string) (isActive bool, hMsg string, err error) {
	res := i.gateway.Put(context.WithoutCancel(ctx), fmt.Sprintf(toggleStatusPath, i.apiHost, id), nil)
	if !res.Success {
		hMsg, err = res.AsOutcome()
		return false, hMsg, err
	}
	updated := departmentapimodels.DepartmentView{}
	if err = res.Decode(&updated); err != nil {
		return false, "", err
	}
	i.cache.Delete(listCacheKey)
	log.
		WithField("rec_id", id).
		WithField("is_active", updated.IsActive).
		Info("переключена активность подразделения")
	return updated.IsActive, "", nil
}
