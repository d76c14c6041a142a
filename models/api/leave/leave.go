package leaveapimodels

import (
	"time"

	"github.com/pkg/errors"

	"hr-admin-console/models"
)

// EmployeeRef - ссылка на сотрудника внутри заявки, владельцем записи
// остается сервер
type EmployeeRef struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	EmployeeID string `json:"employeeId"`
	Department string `json:"department"`
}

type LeaveView struct {
	ID                 string               `json:"_id"`
	Employee           EmployeeRef          `json:"employee"`
	LeaveType          string               `json:"leaveType"`
	Duration           string               `json:"duration"`
	StartDate          time.Time            `json:"startDate"`
	EndDate            time.Time            `json:"endDate"`
	TotalDays          float64              `json:"totalDays"`
	Reason             string               `json:"reason"`
	Status             models.RequestStatus `json:"status"`
	RejectionReason    string               `json:"rejectionReason,omitempty"`
	CancellationReason string               `json:"cancellationReason,omitempty"`
	ApprovedBy         string               `json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time           `json:"approvedAt,omitempty"`
	RejectedBy         string               `json:"rejectedBy,omitempty"`
	RejectedAt         *time.Time           `json:"rejectedAt,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
}

type LeaveCreateData struct {
	LeaveType string `json:"leaveType"`
	Duration  string `json:"duration"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

func (r LeaveCreateData) Validate() error {
	if r.LeaveType == "" {
		return errors.New("не указан тип отпуска")
	}
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return errors.New("дата начала имеет неправильный формат")
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return errors.New("дата окончания имеет неправильный формат")
	}
	if end.Before(start) {
		return errors.New("дата окончания раньше даты начала")
	}
	if r.Reason == "" {
		return errors.New("не указана причина")
	}
	return nil
}

type RejectData struct {
	RejectionReason string `json:"rejectionReason"`
}

func (r RejectData) Validate() error {
	if r.RejectionReason == "" {
		return errors.New("не указана причина отклонения")
	}
	return nil
}

type CancelData struct {
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// StatusCounts - количество заявок по каждому известному статусу
type StatusCounts struct {
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Cancelled int `json:"cancelled"`
	Total     int `json:"total"`
}
