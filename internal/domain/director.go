package domain

import "time"

// Director models a regional director.
type Director struct {
	ID           int64
	Name         string
	Login        string
	PasswordHash string
	Cities       []string
	TgID         *string
	Note         *string
	ContractDoc  *string
	PassportDoc  *string
	DateCreate   time.Time
}
