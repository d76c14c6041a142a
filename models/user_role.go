package models

type UserRole string

const (
	UserRoleSuperAdmin UserRole = "superadmin"
	UserRoleAdmin      UserRole = "admin"
	UserRoleHr         UserRole = "hr"
	UserRoleManager    UserRole = "manager"
	UserRoleEmployee   UserRole = "employee"
)

var roleHumanName = map[UserRole]string{
	UserRoleSuperAdmin: "Суперадмин системы",
	UserRoleAdmin:      "Администратор",
	UserRoleHr:         "HR-менеджер",
	UserRoleManager:    "Руководитель",
	UserRoleEmployee:   "Сотрудник",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin || r == UserRoleSuperAdmin
}

// роли, которым доступна административная консоль
var ConsoleRoles = []UserRole{UserRoleSuperAdmin, UserRoleAdmin, UserRoleHr}

// роли, которым доступно согласование заявок
var ApproverRoles = []UserRole{UserRoleSuperAdmin, UserRoleAdmin, UserRoleHr, UserRoleManager}
