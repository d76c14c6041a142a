package leavehandler

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"hr-admin-console/lib/gateway"
	sessionhandler "hr-admin-console/lib/session"
	initchecker "hr-admin-console/lib/utils/init-checker"
	"hr-admin-console/models"
	leaveapimodels "hr-admin-console/models/api/leave"
)

// Provider - жизненный цикл заявок на отпуск.
// Переходы pending -> approved/rejected/cancelled выполняет сервер,
// клиентские проверки здесь - защита в глубину. Состояние заявок
// не кешируется: после каждой мутации вызывающий перечитывает список.
// Мутации отвязываются от отмены вызывающего: начатый запрос
// доводится до ответа сервера, отменяемы только чтения.
type Provider interface {
	Create(ctx context.Context, data leaveapimodels.LeaveCreateData) (id string, hMsg string, err error)
	My(ctx context.Context) (list []leaveapimodels.LeaveView, hMsg string, err error)
	All(ctx context.Context, filter ListFilter) (list []leaveapimodels.LeaveView, hMsg string, err error)
	ByDepartment(ctx context.Context, departmentID string) (list []leaveapimodels.LeaveView, hMsg string, err error)
	PendingAll(ctx context.Context) (list []leaveapimodels.LeaveView, hMsg string, err error)
	Approve(ctx context.Context, id string) (hMsg string, err error)
	Reject(ctx context.Context, id, reason string) (hMsg string, err error)
	Cancel(ctx context.Context, id, ownerID, reason string) (hMsg string, err error)
}

// ListFilter - серверная выборка; текстовый поиск по загруженному
// списку выполняется локально (FilterByQuery)
type ListFilter struct {
	Department string
	Year       string
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
	leavesPath     string = "%v/leaves"
	leavesAllPath  string = "%v/leaves/all"
	pendingAllPath string = "%v/leaves/pending/all"
	approvePath    string = "%v/leaves/%v/approve"
	rejectPath     string = "%v/leaves/%v/reject"
	cancelPath     string = "%v/leaves/%v/cancel"
)

func (i impl) GetLogger(id string) *log.Entry {
	return log.WithField("leave_id", id)
}

func (i impl) Create(ctx context.Context, data leaveapimodels.LeaveCreateData) (id string, hMsg string, err error) {
	if vErr := data.Validate(); vErr != nil {
		return "", vErr.Error(), nil
	}
	res := i.gateway.Post(context.WithoutCancel(ctx), fmt.Sprintf(leavesPath, i.apiHost), data)
	if !res.Success {
		hMsg, err = res.AsOutcome()
		return "", hMsg, err
	}
	created := leaveapimodels.LeaveView{}
	if err = res.Decode(&created); err != nil {
		return "", "", err
	}
	i.GetLogger(created.ID).Info("создана заявка на отпуск")
	return created.ID, "", nil
}

func (i impl) My(ctx context.Context) (list []leaveapimodels.LeaveView, hMsg string, err error) {
	return i.fetchList(ctx, fmt.Sprintf(leavesPath, i.apiHost), nil)
}

func (i impl) All(ctx context.Context, filter ListFilter) (list []leaveapimodels.LeaveView, hMsg string, err error) {
	query := url.Values{}
	if filter.Department != "" {
		query.Set("department", filter.Department)
	}
	if filter.Year != "" {
		query.Set("year", filter.Year)
	}
	return i.fetchList(ctx, fmt.Sprintf(leavesAllPath, i.apiHost), query)
}

func (i impl) ByDepartment(ctx context.Context, departmentID string) (list []leaveapimodels.LeaveView, hMsg string, err error) {
	return i.All(ctx, ListFilter{Department: departmentID})
}

func (i impl) PendingAll(ctx context.Context) (list []leaveapimodels.LeaveView, hMsg string, err error) {
	return i.fetchList(ctx, fmt.Sprintf(pendingAllPath, i.apiHost), nil)
}

func (i impl) Approve(ctx context.Context, id string) (hMsg string, err error) {
	// согласование доступно HR, администраторам и руководителю
	// подразделения; решающая проверка - на сервере
	if !i.session.IsAllowed(models.ApproverRoles...) {
		return "недостаточно прав для согласования заявки", nil
	}
	res := i.gateway.Put(context.WithoutCancel(ctx), fmt.Sprintf(approvePath, i.apiHost, id), nil)
	if !res.Success {
		return res.AsOutcome()
	}
	i.GetLogger(id).Info("заявка на отпуск согласована")
	return "", nil
}

func (i impl) Reject(ctx context.Context, id, reason string) (hMsg string, err error) {
	data := leaveapimodels.RejectData{RejectionReason: reason}
	// отклонение без причины отбрасывается до обращения к сети
	if vErr := data.Validate(); vErr != nil {
		return vErr.Error(), nil
	}
	if !i.session.IsAllowed(models.ApproverRoles...) {
		return "недостаточно прав для отклонения заявки", nil
	}
	res := i.gateway.Put(context.WithoutCancel(ctx), fmt.Sprintf(rejectPath, i.apiHost, id), data)
	if !res.Success {
		return res.AsOutcome()
	}
	i.GetLogger(id).Info("заявка на отпуск отклонена")
	return "", nil
}

func (i impl) Cancel(ctx context.Context, id, ownerID, reason string) (hMsg string, err error) {
	// отменить может владелец заявки или администратор
	user := i.session.CurrentUser()
	if user == nil {
		return "", errors.New("нет активной сессии")
	}
	if user.ID != ownerID && !user.Role.IsAdmin() {
		return "отменить заявку может только ее владелец или администратор", nil
	}
	res := i.gateway.Put(context.WithoutCancel(ctx), fmt.Sprintf(cancelPath, i.apiHost, id), leaveapimodels.CancelData{CancellationReason: reason})
	if !res.Success {
		return res.AsOutcome()
	}
	i.GetLogger(id).Info("заявка на отпуск отменена")
	return "", nil
}

func (i impl) fetchList(ctx context.Context, route string, query url.Values) (list []leaveapimodels.LeaveView, hMsg string, err error) {
	res := i.gateway.Get(ctx, route, query)
	if !res.Success {
		hMsg, err = res.AsOutcome()
		return nil, hMsg, err
	}
	list = []leaveapimodels.LeaveView{}
	if err = res.Decode(&list); err != nil {
		return nil, "", err
	}
	return list, "", nil
}
