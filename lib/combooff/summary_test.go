package comboffhandler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hr-admin-console/models"
	combooffapimodels "hr-admin-console/models/api/combooff"
	leaveapimodels "hr-admin-console/models/api/leave"
)

func comboOff(employeeID string, workDate string, status models.RequestStatus) combooffapimodels.ComboOffView {
	date, err := time.Parse("2006-01-02", workDate)
	if err != nil {
		panic(err)
	}
	return combooffapimodels.ComboOffView{
		Employee: leaveapimodels.EmployeeRef{ID: employeeID, Name: "Сотрудник " + employeeID},
		WorkDate: date,
		Status:   status,
	}
}

func TestBuildMonthlySummary(t *testing.T) {
	list := []combooffapimodels.ComboOffView{
		comboOff("e2", "2026-03-07", models.RequestStatusApproved),
		comboOff("e1", "2026-03-01", models.RequestStatusApproved),
		comboOff("e1", "2026-03-14", models.RequestStatusApproved),
		comboOff("e1", "2026-03-21", models.RequestStatusPending),
		comboOff("e1", "2026-04-04", models.RequestStatusApproved),
		comboOff("e3", "2025-03-15", models.RequestStatusApproved),
		comboOff("e3", "2026-03-15", models.RequestStatusRejected),
	}

	t.Run(`считаются только согласованные отгулы указанного месяца`, func(t *testing.T) {
		rows := BuildMonthlySummary(list, 3, 2026)
		require.Len(t, rows, 2)

		require.Equal(t, "e1", rows[0].Employee.ID)
		require.Equal(t, 2, rows[0].ApprovedCount)
		require.Equal(t, 3, rows[0].Month)
		require.Equal(t, 2026, rows[0].Year)

		require.Equal(t, "e2", rows[1].Employee.ID)
		require.Equal(t, 1, rows[1].ApprovedCount)
	})

	t.Run(`месяц без совпадений дает пустую сводку`, func(t *testing.T) {
		rows := BuildMonthlySummary(list, 12, 2026)
		require.Len(t, rows, 0)
	})

	t.Run(`исходный набор не меняется`, func(t *testing.T) {
		before := make([]combooffapimodels.ComboOffView, len(list))
		copy(before, list)
		_ = BuildMonthlySummary(list, 3, 2026)
		require.Equal(t, before, list)
	})
}
