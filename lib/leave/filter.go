package leavehandler

import (
	"strings"

	"hr-admin-console/models"
	leaveapimodels "hr-admin-console/models/api/leave"
)

// Проекции над загруженным списком заявок. Чистые функции:
// исходный порядок сервера не меняется, данные не мутируются,
// записи с неизвестным статусом в подсчеты не попадают.

func FilterByStatus(list []leaveapimodels.LeaveView, status models.RequestStatus) []leaveapimodels.LeaveView {
	result := make([]leaveapimodels.LeaveView, 0, len(list))
	for _, rec := range list {
		if rec.Status == status {
			result = append(result, rec)
		}
	}
	return result
}

// FilterByQuery - регистронезависимый поиск подстроки по имени и почте
// сотрудника, типу отпуска и причине
func FilterByQuery(list []leaveapimodels.LeaveView, query string) []leaveapimodels.LeaveView {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return list
	}
	result := make([]leaveapimodels.LeaveView, 0, len(list))
	for _, rec := range list {
		if matchesQuery(rec, query) {
			result = append(result, rec)
		}
	}
	return result
}

// VisibleRows - текстовый фильтр пересекается с разбиением по статусу,
// а не заменяет его: поиск работает только внутри выбранной вкладки
func VisibleRows(list []leaveapimodels.LeaveView, status models.RequestStatus, query string) []leaveapimodels.LeaveView {
	return FilterByQuery(FilterByStatus(list, status), query)
}

func CountByStatus(list []leaveapimodels.LeaveView) leaveapimodels.StatusCounts {
	counts := leaveapimodels.StatusCounts{}
	for _, rec := range list {
		// неизвестный статус не считается ни в одной группе
		if !rec.Status.IsKnown() {
			continue
		}
		switch rec.Status {
		case models.RequestStatusPending:
			counts.Pending++
		case models.RequestStatusApproved:
			counts.Approved++
		case models.RequestStatusRejected:
			counts.Rejected++
		case models.RequestStatusCancelled:
			counts.Cancelled++
		}
		counts.Total++
	}
	return counts
}

func matchesQuery(rec leaveapimodels.LeaveView, query string) bool {
	for _, value := range []string{
		rec.Employee.Name,
		rec.Employee.Email,
		rec.LeaveType,
		rec.Reason,
	} {
		if strings.Contains(strings.ToLower(value), query) {
			return true
		}
	}
	return false
}
