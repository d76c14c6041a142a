package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	log "github.com/sirupsen/logrus"

	"hr-admin-console/config"
	"hr-admin-console/initializers"
	comboffhandler "hr-admin-console/lib/combooff"
	departmenthandler "hr-admin-console/lib/department"
	csvexport "hr-admin-console/lib/export/csv"
	pdfexport "hr-admin-console/lib/export/pdf"
	xlsexport "hr-admin-console/lib/export/xls"
	leavehandler "hr-admin-console/lib/leave"
	sessionhandler "hr-admin-console/lib/session"
	"hr-admin-console/models"
	authapimodels "hr-admin-console/models/api/auth"
	combooffapimodels "hr-admin-console/models/api/combooff"
	leaveapimodels "hr-admin-console/models/api/leave"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initializers.InitAllServices()

	// отмена долгих запросов по Ctrl+C
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		log.Info("получен сигнал остановки")
		cancel()
	}()

	if len(os.Args) < 2 {
		usage()
		return
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	if cmd != "login" && cmd != "recover" {
		state := sessionhandler.Instance.RestoreSession(ctx)
		if state != models.SessionStateAuthenticated && cmd != "logout" {
			fmt.Println("требуется вход: hr-admin-console login <email> <пароль>")
			return
		}
	}

	switch cmd {
	case "login":
		requireArgs(args, 2)
		hMsg, err := sessionhandler.Instance.Login(ctx, authapimodels.LoginRequest{
			Email:    args[0],
			Password: args[1],
		})
		report(hMsg, err)
		user := sessionhandler.Instance.CurrentUser()
		fmt.Printf("вход выполнен: %v, роль: %v\n", user.GetDisplayName(), user.Role.ToHuman())
	case "recover":
		requireArgs(args, 1)
		if len(args) >= 3 {
			hMsg, err := sessionhandler.Instance.ResetPassword(ctx, authapimodels.PasswordResetRequest{
				ResetCode:   args[1],
				NewPassword: args[2],
			})
			report(hMsg, err)
			fmt.Println("пароль обновлен")
			return
		}
		hMsg, err := sessionhandler.Instance.RequestPasswordReset(ctx, authapimodels.PasswordRecovery{Email: args[0]})
		report(hMsg, err)
		fmt.Println("письмо с кодом восстановления отправлено")
	case "logout":
		sessionhandler.Instance.Logout(ctx)
		fmt.Println("выход выполнен")
	case "whoami":
		// запись личности обновляется с сервера, а не читается из кеша
		hMsg, err := sessionhandler.Instance.RefreshMe(ctx)
		report(hMsg, err)
		user := sessionhandler.Instance.CurrentUser()
		fmt.Printf("%v (%v), роль: %v\n", user.GetDisplayName(), user.Email, user.Role.ToHuman())
	case "pending":
		list, hMsg, err := leavehandler.Instance.PendingAll(ctx)
		report(hMsg, err)
		for _, rec := range list {
			fmt.Printf("%v\t%v\t%v - %v\t%v\n", rec.ID, rec.Employee.Name,
				rec.StartDate.Format("02.01.2006"), rec.EndDate.Format("02.01.2006"), rec.Reason)
		}
	case "approve":
		requireArgs(args, 1)
		hMsg, err := leavehandler.Instance.Approve(ctx, args[0])
		report(hMsg, err)
		fmt.Println("заявка согласована")
	case "reject":
		requireArgs(args, 2)
		hMsg, err := leavehandler.Instance.Reject(ctx, args[0], args[1])
		report(hMsg, err)
		fmt.Println("заявка отклонена")
	case "cancel":
		requireArgs(args, 1)
		reason := ""
		if len(args) > 1 {
			reason = args[1]
		}
		user := sessionhandler.Instance.CurrentUser()
		hMsg, err := leavehandler.Instance.Cancel(ctx, args[0], user.ID, reason)
		report(hMsg, err)
		fmt.Println("заявка отменена")
	case "review":
		requireArgs(args, 2)
		data := combooffapimodels.ReviewData{Status: models.RequestStatus(args[1])}
		if len(args) > 2 {
			data.RejectionReason = args[2]
		}
		hMsg, err := comboffhandler.Instance.Review(ctx, args[0], data)
		report(hMsg, err)
		fmt.Println("решение по отгулу принято")
	case "summary":
		requireArgs(args, 2)
		month, err := strconv.Atoi(args[0])
		if err != nil || month < 1 || month > 12 {
			fmt.Printf("месяц указан неверно: %v\n", args[0])
			os.Exit(2)
		}
		year, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Printf("год указан неверно: %v\n", args[1])
			os.Exit(2)
		}
		rows, hMsg, err := comboffhandler.Instance.MonthlySummary(ctx, month, year)
		report(hMsg, err)
		for _, row := range rows {
			fmt.Printf("%v\t%v\n", row.Employee.Name, row.ApprovedCount)
		}
	case "departments":
		list, hMsg, err := departmenthandler.Instance.List(ctx)
		report(hMsg, err)
		for _, rec := range list {
			fmt.Printf("%v\t%v\t%v\tактивно: %v\n", rec.ID, rec.Code, rec.Name, rec.IsActive)
		}
	case "export":
		requireArgs(args, 1)
		status := models.RequestStatus(args[0])
		if !statusIn(status, models.LeaveStatuses) {
			fmt.Printf("неизвестный статус: %v\n", args[0])
			os.Exit(2)
		}
		format := "csv"
		if len(args) > 1 {
			format = args[1]
		}
		query := ""
		if len(args) > 2 {
			query = args[2]
		}
		exportLeaves(ctx, status, format, query)
	default:
		usage()
	}
}

// leaveExporter - общий контракт выгрузок, формат выбирается командой
type leaveExporter interface {
	ExportLeaveList(list []leaveapimodels.LeaveView, status models.RequestStatus) (file *bytes.Buffer, fileName string, hMsg string, err error)
}

func exportLeaves(ctx context.Context, status models.RequestStatus, format, query string) {
	var exporter leaveExporter
	switch format {
	case "csv":
		exporter = csvexport.Instance
	case "xlsx":
		exporter = xlsexport.Instance
	case "pdf":
		exporter = pdfexport.Instance
	default:
		fmt.Printf("неизвестный формат выгрузки: %v\n", format)
		os.Exit(2)
	}
	list, hMsg, err := leavehandler.Instance.All(ctx, leavehandler.ListFilter{})
	report(hMsg, err)
	// выгружается видимый набор: вкладка статуса плюс текстовый фильтр
	visible := leavehandler.VisibleRows(list, status, query)
	file, fileName, hMsg, err := exporter.ExportLeaveList(visible, status)
	report(hMsg, err)
	filePath := filepath.Join(config.Conf.Export.Dir, fileName)
	if err = os.WriteFile(filePath, file.Bytes(), 0o644); err != nil {
		log.WithError(err).Fatal("ошибка сохранения файла выгрузки")
	}
	fmt.Printf("выгружено строк: %v, файл: %v\n", len(visible), filePath)
}

func report(hMsg string, err error) {
	if err != nil {
		log.WithError(err).Fatal("операция не выполнена")
	}
	if hMsg != "" {
		fmt.Println(hMsg)
		os.Exit(1)
	}
}

func statusIn(status models.RequestStatus, allowed []models.RequestStatus) bool {
	for _, known := range allowed {
		if status == known {
			return true
		}
	}
	return false
}

func requireArgs(args []string, n int) {
	if len(args) < n {
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println(`использование:
  hr-admin-console login <email> <пароль>
  hr-admin-console recover <email> [код новый-пароль]
  hr-admin-console logout | whoami | pending | departments
  hr-admin-console approve <id>
  hr-admin-console reject <id> <причина>
  hr-admin-console cancel <id> [причина]
  hr-admin-console review <id> approved|rejected [причина]
  hr-admin-console summary <месяц> <год>
  hr-admin-console export <статус> [csv|xlsx|pdf] [поиск]`)
}
