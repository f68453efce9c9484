package domain

// ErrorLog is a persisted record of a server-side failure.
type ErrorLog struct {
	Service       string
	ErrorType     string
	ErrorMessage  string
	UserID        *int64
	UserRole      *string
	RequestURL    string
	RequestMethod string
	IP            *string
	UserAgent     *string
	Metadata      map[string]any
}
