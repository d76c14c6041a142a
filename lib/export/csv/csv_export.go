package csvexport

import (
	"bytes"
	"encoding/csv"
	"time"

	"github.com/pkg/errors"

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

// ExportLeaveList - выгрузка видимого набора в текст с разделителями,
// UTF-8. Пустой набор обрывает выгрузку без создания файла.
func (i impl) ExportLeaveList(list []leaveapimodels.LeaveView, status models.RequestStatus) (file *bytes.Buffer, fileName string, hMsg string, err error) {
	if len(list) == 0 {
		return nil, "", "нет данных для выгрузки", nil
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err = writer.Write(exportregister.LeaveHeaders); err != nil {
		return nil, "", "", errors.Wrap(err, "ошибка формирования заголовка выгрузки")
	}
	for _, row := range exportregister.BuildLeaveRows(list) {
		if err = writer.Write(row); err != nil {
			return nil, "", "", errors.Wrap(err, "ошибка формирования строки выгрузки")
		}
	}
	writer.Flush()
	if err = writer.Error(); err != nil {
		return nil, "", "", errors.Wrap(err, "ошибка записи выгрузки")
	}
	fileName = exportregister.LeaveFileName(status, time.Now()) + ".csv"
	return buf, fileName, "", nil
}
