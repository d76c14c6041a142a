package comboffhandler

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	log "github.com/sirupsen/logrus"

	"hr-admin-console/lib/gateway"
	sessionhandler "hr-admin-console/lib/session"
	initchecker "hr-admin-console/lib/utils/init-checker"
	"hr-admin-console/models"
	combooffapimodels "hr-admin-console/models/api/combooff"
)

// Provider - жизненный цикл заявок на отгулы.
// Набор статусов уже, чем у отпусков: отмена не предусмотрена,
// решение (approved/rejected) принимается одним вызовом review.
// Мутации, как и у отпусков, отвязываются от отмены вызывающего.
type Provider interface {
	Create(ctx context.Context, data combooffapimodels.ComboOffCreateData) (id string, hMsg string, err error)
	My(ctx context.Context) (list []combooffapimodels.ComboOffView, hMsg string, err error)
	All(ctx context.Context) (list []combooffapimodels.ComboOffView, hMsg string, err error)
	Review(ctx context.Context, id string, data combooffapimodels.ReviewData) (hMsg string, err error)
	MonthlySummary(ctx context.Context, month, year int) (rows []combooffapimodels.MonthlySummaryRow, hMsg string, err error)
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
	comboOffPath    string = "%v/combooff"
	comboOffAllPath string = "%v/combooff/all"
	reviewPath      string = "%v/combooff/%v/review"
	summaryPath     string = "%v/combooff/summary/monthly"
)

func (i impl) Create(ctx context.Context, data combooffapimodels.ComboOffCreateData) (id string, hMsg string, err error) {
	if vErr := data.Validate(); vErr != nil {
		return "", vErr.Error(), nil
	}
	res := i.gateway.Post(context.WithoutCancel(ctx), fmt.Sprintf(comboOffPath, i.apiHost), data)
	if !res.Success {
		hMsg, err = res.AsOutcome()
		return "", hMsg, err
	}
	created := combooffapimodels.ComboOffView{}
	if err = res.Decode(&created); err != nil {
		return "", "", err
	}
	log.WithField("combooff_id", created.ID).Info("создана заявка на отгул")
	return created.ID, "", nil
}

func (i impl) My(ctx context.Context) (list []combooffapimodels.ComboOffView, hMsg string, err error) {
	return i.fetchList(ctx, fmt.Sprintf(comboOffPath, i.apiHost))
}

func (i impl) All(ctx context.Context) (list []combooffapimodels.ComboOffView, hMsg string, err error) {
	return i.fetchList(ctx, fmt.Sprintf(comboOffAllPath, i.apiHost))
}

func (i impl) Review(ctx context.Context, id string, data combooffapimodels.ReviewData) (hMsg string, err error) {
	// отклонение без причины отбрасывается до обращения к сети
	if vErr := data.Validate(); vErr != nil {
		return vErr.Error(), nil
	}
	if !i.session.IsAllowed(models.ApproverRoles...) {
		return "недостаточно прав для решения по заявке", nil
	}
	res := i.gateway.Put(context.WithoutCancel(ctx), fmt.Sprintf(reviewPath, i.apiHost, id), data)
	if !res.Success {
		return res.AsOutcome()
	}
	log.
		WithField("combooff_id", id).
		WithField("status", data.Status).
		Info("принято решение по заявке на отгул")
	return "", nil
}

func (i impl) MonthlySummary(ctx context.Context, month, year int) (rows []combooffapimodels.MonthlySummaryRow, hMsg string, err error) {
	query := url.Values{}
	query.Set("month", strconv.Itoa(month))
	query.Set("year", strconv.Itoa(year))
	res := i.gateway.Get(ctx, fmt.Sprintf(summaryPath, i.apiHost), query)
	if !res.Success {
		hMsg, err = res.AsOutcome()
		return nil, hMsg, err
	}
	rows = []combooffapimodels.MonthlySummaryRow{}
	if err = res.Decode(&rows); err != nil {
		return nil, "", err
	}
	return rows, "", nil
}

func (i impl) fetchList(ctx context.Context, route string) (list []combooffapimodels.ComboOffView, hMsg string, err error) {
	res := i.gateway.Get(ctx, route, nil)
	if !res.Success {
		hMsg, err = res.AsOutcome()
		return nil, hMsg, err
	}
	list = []combooffapimodels.ComboOffView{}
	if err = res.Decode(&list); err != nil {
		return nil, "", err
	}
	return list, "", nil
}
