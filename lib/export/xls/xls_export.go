package xlsexport

import (
	"bytes"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	exportregister "hr-admin-console/lib/export/register"
	"hr-admin-console/models"
	leaveapimodels "hr-admin-console/models/api/leave"
)

type Provider interface {
	ExportLeaveList(list []leaveapimodels.LeaveView, status models.RequestStatus) (file *bytes.Buffer, fileName string, hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

// ExportLeaveList - реестр заявок в xlsx, колонки и порядок строк
// те же, что в текстовой выгрузке
func (i impl) ExportLeaveList(list []leaveapimodels.LeaveView, status models.RequestStatus) (file *bytes.Buffer, fileName string, hMsg string, err error) {
	if len(list) == 0 {
		return nil, "", "нет данных для выгрузки", nil
	}
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.WithError(closeErr).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err = writeHeader(f, sheet, row, exportregister.LeaveHeaders)
	if err != nil {
		return nil, "", "", errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	rows := exportregister.BuildLeaveRows(list)
	if err = applyDataCellStyle(f, sheet, 1, row+1, len(exportregister.LeaveHeaders), len(rows)+1); err != nil {
		return nil, "", "", errors.Wrap(err, "ошибка оформления таблицы в xlsx")
	}
	for _, values := range rows {
		row++
		for idx, value := range values {
			if err = writeColumn(f, sheet, idx+1, row, value); err != nil {
				return nil, "", "", errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
			}
		}
	}
	f.SetSheetName(sheet, "Заявки")
	file, err = f.WriteToBuffer()
	if err != nil {
		return nil, "", "", errors.Wrap(err, "ошибка записи xlsx")
	}
	fileName = exportregister.LeaveFileName(status, time.Now()) + ".xlsx"
	return file, fileName, "", nil
}
