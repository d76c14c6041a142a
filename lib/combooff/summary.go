package comboffhandler

import (
	"sort"

	"hr-admin-console/models"
	combooffapimodels "hr-admin-console/models/api/combooff"
)

// BuildMonthlySummary - локальная свертка по загруженному набору:
// согласованные отгулы группируются по сотруднику и считаются
// за указанный месяц. Чистая функция, исходный набор не меняется;
// заявки в любом другом статусе и с неизвестным статусом не учитываются.
func BuildMonthlySummary(list []combooffapimodels.ComboOffView, month, year int) []combooffapimodels.MonthlySummaryRow {
	byEmployee := map[string]*combooffapimodels.MonthlySummaryRow{}
	order := []string{}
	for _, rec := range list {
		if rec.Status != models.RequestStatusApproved {
			continue
		}
		if int(rec.WorkDate.Month()) != month || rec.WorkDate.Year() != year {
			continue
		}
		row, exist := byEmployee[rec.Employee.ID]
		if !exist {
			row = &combooffapimodels.MonthlySummaryRow{
				Employee: rec.Employee,
				Month:    month,
				Year:     year,
			}
			byEmployee[rec.Employee.ID] = row
			order = append(order, rec.Employee.ID)
		}
		row.ApprovedCount++
	}
	sort.Strings(order)
	result := make([]combooffapimodels.MonthlySummaryRow, 0, len(order))
	for _, employeeID := range order {
		result = append(result, *byEmployee[employeeID])
	}
	return result
}
