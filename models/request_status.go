package models

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

var requestStatusHumanName = map[RequestStatus]string{
	RequestStatusPending:   "На рассмотрении",
	RequestStatusApproved:  "Согласована",
	RequestStatusRejected:  "Отклонена",
	RequestStatusCancelled: "Отменена",
}

func (s RequestStatus) ToHuman() string {
	if human, exist := requestStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsKnown - неизвестный статус исключается из всех подсчетов
func (s RequestStatus) IsKnown() bool {
	_, exist := requestStatusHumanName[s]
	return exist
}

// статусы заявок на отпуск
var LeaveStatuses = []RequestStatus{RequestStatusPending, RequestStatusApproved, RequestStatusRejected, RequestStatusCancelled}
