package domain

import "time"

// OperatorType differentiates call-centre admins from operators.
type OperatorType string

const (
	OperatorTypeAdmin    OperatorType = "admin"
	OperatorTypeOperator OperatorType = "operator"
)

// Valid reports whether t names a known operator table.
func (t OperatorType) Valid() bool {
	return t == OperatorTypeAdmin || t == OperatorTypeOperator
}

// Role maps the operator type onto the token role it authenticates as.
func (t OperatorType) Role() Role {
	if t == OperatorTypeAdmin {
		return RoleCallcentreAdmin
	}
	return RoleCallcentreOperator
}

// Operator models call-centre staff, either an admin or an operator.
type Operator struct {
	ID           int64
	Type         OperatorType
	Name         string
	Login        string
	PasswordHash string
	City         *string
	SipAddress   *string
	StatusWork   string
	Note         *string
	DateCreate   time.Time
}
