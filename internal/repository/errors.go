package repository

import "errors"

// ErrNoProfile is returned for roles that have no backing personnel table.
var ErrNoProfile = errors.New("role has no profile table")
