package csvexport

import (
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	exportregister "hr-admin-console/lib/export/register"
	"hr-admin-console/models"
	leaveapimodels "hr-admin-console/models/api/leave"
)

func TestExportLeaveList(t *testing.T) {
	NewHandler()

	t.Run(`пустой набор обрывает выгрузку без файла`, func(t *testing.T) {
		file, fileName, hMsg, err := Instance.ExportLeaveList(nil, models.RequestStatusPending)
		require.Nil(t, err)
		require.Equal(t, "нет данных для выгрузки", hMsg)
		require.Nil(t, file)
		require.Equal(t, "", fileName)
	})

	t.Run(`заголовок и строки в порядке набора`, func(t *testing.T) {
		list := []leaveapimodels.LeaveView{
			{
				Employee: leaveapimodels.EmployeeRef{
					Name:       "Иванов Иван",
					Email:      "ivanov@example.com",
					EmployeeID: "EMP-7",
				},
				LeaveType: "annual",
				Duration:  "full-day",
				StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
				TotalDays: 5,
				Reason:    "семейные обстоятельства",
				Status:    models.RequestStatusPending,
				CreatedAt: time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC),
			},
			{
				Employee:  leaveapimodels.EmployeeRef{Name: "Петрова Анна"},
				LeaveType: "sick",
				Status:    models.RequestStatusPending,
				TotalDays: 0.5,
			},
		}

		file, fileName, hMsg, err := Instance.ExportLeaveList(list, models.RequestStatusPending)
		require.Nil(t, err)
		require.Equal(t, "", hMsg)
		require.NotNil(t, file)
		require.Equal(t, fmt.Sprintf("leaves_pending_%v.csv", time.Now().Format("2006-01-02")), fileName)

		records, err := csv.NewReader(file).ReadAll()
		require.Nil(t, err)
		require.Len(t, records, 3)
		require.Equal(t, exportregister.LeaveHeaders, records[0])
		require.Equal(t, []string{
			"Иванов Иван",
			"ivanov@example.com",
			"EMP-7",
			"annual",
			"full-day",
			"02.03.2026",
			"06.03.2026",
			"5",
			"семейные обстоятельства",
			"pending",
			"20.02.2026",
		}, records[1])
		require.Equal(t, "Петрова Анна", records[2][0])
		require.Equal(t, "0.5", records[2][7])
	})
}
