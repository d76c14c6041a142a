package combooffapimodels

import (
	"time"

	"github.com/pkg/errors"

	"hr-admin-console/models"
	leaveapimodels "hr-admin-console/models/api/leave"
)

// ComboOffView - заявка на отгул за отработанный день
type ComboOffView struct {
	ID              string                      `json:"_id"`
	Employee        leaveapimodels.EmployeeRef  `json:"employee"`
	WorkDate        time.Time                   `json:"workDate"`
	Reason          string                      `json:"reason"`
	Status          models.RequestStatus        `json:"status"`
	RejectionReason string                      `json:"rejectionReason,omitempty"`
	ApprovedBy      string                      `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time                  `json:"approvedAt,omitempty"`
	RejectedBy      string                      `json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time                  `json:"rejectedAt,omitempty"`
	CreatedAt       time.Time                   `json:"createdAt"`
}

type ComboOffCreateData struct {
	WorkDate string `json:"workDate"`
	Reason   string `json:"reason"`
}

func (r ComboOffCreateData) Validate() error {
	if _, err := time.Parse("2006-01-02", r.WorkDate); err != nil {
		return errors.New("отработанный день имеет неправильный формат даты")
	}
	if r.Reason == "" {
		return errors.New("не указана причина")
	}
	return nil
}

// ReviewData - решение по заявке, approved или rejected одним запросом
type ReviewData struct {
	Status          models.RequestStatus `json:"status"`
	RejectionReason string               `json:"rejectionReason,omitempty"`
}

func (r ReviewData) Validate() error {
	if r.Status != models.RequestStatusApproved && r.Status != models.RequestStatusRejected {
		return errors.New("решение по заявке может быть только approved или rejected")
	}
	if r.Status == models.RequestStatusRejected && r.RejectionReason == "" {
		return errors.New("не указана причина отклонения")
	}
	return nil
}

// MonthlySummaryRow - количество согласованных отгулов сотрудника за месяц,
// используется для учета накопленных отгулов
type MonthlySummaryRow struct {
	Employee      leaveapimodels.EmployeeRef `json:"employee"`
	Month         int                        `json:"month"`
	Year          int                        `json:"year"`
	ApprovedCount int                        `json:"approvedCount"`
}
