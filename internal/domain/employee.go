package domain

import "time"

// Employee is the merged read model over masters and directors.
type Employee struct {
	ID         int64
	Role       Role
	Name       string
	Login      *string
	Cities     []string
	StatusWork *string
	Note       *string
	DateCreate time.Time
}

// Profile is the self view returned to an authenticated caller.
type Profile struct {
	ID         int64
	Role       Role
	Name       string
	Login      string
	Cities     []string
	City       *string
	StatusWork *string
	Note       *string
	TgID       *string
	ChatID     *string
	SipAddress *string
	DateCreate time.Time
}
