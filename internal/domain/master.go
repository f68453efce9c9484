package domain

import "time"

// Master models a field technician.
type Master struct {
	ID           int64
	Name         string
	Login        *string
	PasswordHash *string
	Phone        *string
	Cities       []string
	StatusWork   string
	Note         *string
	ContractDoc  *string
	PassportDoc  *string
	TgID         *string
	ChatID       *string
	DateCreate   time.Time
}
