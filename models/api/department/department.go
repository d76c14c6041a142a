package departmentapimodels

import (
	"github.com/pkg/errors"
)

type DepartmentData struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Head        string `json:"head,omitempty"`
}

func (c DepartmentData) Validate() error {
	if c.Name == "" {
		return errors.New("не указано название подразделения")
	}
	if c.Code == "" {
		return errors.New("не указан код подразделения")
	}
	return nil
}

type DepartmentView struct {
	DepartmentData
	ID       string `json:"_id"`
	IsActive bool   `json:"isActive"`
}
