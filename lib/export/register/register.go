package exportregister

import (
	"fmt"
	"time"

	"hr-admin-console/models"
	leaveapimodels "hr-admin-console/models/api/leave"
)

// Реестр заявок на отпуск для выгрузки. Порядок колонок фиксирован
// контрактом выгрузки и одинаков для всех форматов.

var LeaveHeaders = []string{
	"Employee Name",
	"Email",
	"Employee ID",
	"Leave Type",
	"Duration",
	"Start Date",
	"End Date",
	"Total Days",
	"Reason",
	"Status",
	"Applied On",
}

const dateFormat = "02.01.2006"

// BuildLeaveRows - строки в порядке переданного набора; выгружается
// ровно тот набор, который виден после фильтрации
func BuildLeaveRows(list []leaveapimodels.LeaveView) [][]string {
	rows := make([][]string, 0, len(list))
	for _, rec := range list {
		rows = append(rows, []string{
			rec.Employee.Name,
			rec.Employee.Email,
			rec.Employee.EmployeeID,
			rec.LeaveType,
			rec.Duration,
			rec.StartDate.Format(dateFormat),
			rec.EndDate.Format(dateFormat),
			fmt.Sprintf("%v", rec.TotalDays),
			rec.Reason,
			string(rec.Status),
			rec.CreatedAt.Format(dateFormat),
		})
	}
	return rows
}

// LeaveFileName - имя файла выгрузки без расширения,
// leaves_<статус>_<дата>
func LeaveFileName(status models.RequestStatus, now time.Time) string {
	return fmt.Sprintf("leaves_%v_%v", status, now.Format("2006-01-02"))
}
