package initializers

import (
	"net/http"
	"time"

	"hr-admin-console/config"
	comboffhandler "hr-admin-console/lib/combooff"
	departmenthandler "hr-admin-console/lib/department"
	employeehandler "hr-admin-console/lib/employee"
	csvexport "hr-admin-console/lib/export/csv"
	pdfexport "hr-admin-console/lib/export/pdf"
	xlsexport "hr-admin-console/lib/export/xls"
	"hr-admin-console/lib/gateway"
	leavehandler "hr-admin-console/lib/leave"
	sessionhandler "hr-admin-console/lib/session"
	sessionstore "hr-admin-console/lib/session/store"
)

// SessionStore и Gateway создаются здесь и передаются в конструкторы
// явно: хранилищем сессии владеет контроллер, шлюз его только читает
var (
	SessionStore sessionstore.Provider
	Gateway      gateway.Provider
)

func InitAllServices() {
	InitLogger()
	config.InitConfig()

	apiHost := config.Conf.Api.Host
	httpClient := &http.Client{
		Timeout: time.Second * time.Duration(config.Conf.Api.TimeoutEx),
	}

	SessionStore = sessionstore.NewInstance(config.Conf.Session.FilePath)
	Gateway = gateway.NewInstance(SessionStore, httpClient)

	sessionhandler.NewHandler(apiHost, Gateway, SessionStore, config.Conf.Session.VerifyOnRestore)
	leavehandler.NewHandler(apiHost, Gateway, sessionhandler.Instance)
	comboffhandler.NewHandler(apiHost, Gateway, sessionhandler.Instance)
	departmenthandler.NewHandler(apiHost, Gateway)
	employeehandler.NewHandler(apiHost, Gateway, sessionhandler.Instance)
	csvexport.NewHandler()
	xlsexport.NewHandler()
	pdfexport.NewHandler(config.Conf.Export.FontDir)
}
