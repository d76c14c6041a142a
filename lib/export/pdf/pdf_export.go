package pdfexport

import (
	"bytes"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	exportregister "hr-admin-console/lib/export/register"
	"hr-admin-console/models"
	leaveapimodels "hr-admin-console/models/api/leave"
)

type Provider interface {
	ExportLeaveList(list []leaveapimodels.LeaveView, status models.RequestStatus) (file *bytes.Buffer, fileName string, hMsg string, err error)
}

var Instance Provider

// NewHandler - fontDir должен содержать Arial.ttf и Arial Bold.ttf
func NewHandler(fontDir string) {
	Instance = impl{fontDir: fontDir}
}

type impl struct {
	fontDir string
}

var columnWidths = []float64{32, 38, 20, 22, 18, 20, 20, 14, 46, 20, 20}

// ExportLeaveList - печатная форма реестра заявок, альбомный A4
func (i impl) ExportLeaveList(list []leaveapimodels.LeaveView, status models.RequestStatus) (file *bytes.Buffer, fileName string, hMsg string, err error) {
	if len(list) == 0 {
		return nil, "", "нет данных для выгрузки", nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("ExportLeaveList panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("L", "mm", "A4", i.fontDir)
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	if pdf.Error() != nil {
		return nil, "", "", pdf.Error()
	}

	pdf.SetFont("Arial", "B", 8)
	for idx, header := range exportregister.LeaveHeaders {
		pdf.CellFormat(columnWidths[idx], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range exportregister.BuildLeaveRows(list) {
		for idx, value := range row {
			pdf.CellFormat(columnWidths[idx], 7, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, "", "", errors.Wrap(err, "ошибка записи pdf")
	}
	fileName = exportregister.LeaveFileName(status, time.Now()) + ".pdf"
	return buf, fileName, "", nil
}
