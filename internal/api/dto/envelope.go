package dto

// Envelope is the response shape shared by every personnel endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK wraps data in a successful envelope.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Done is a successful envelope carrying a message and optional data.
func Done(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// ListQuery carries shared list query parameters.
type ListQuery struct {
	Search *string
	Limit  int    
	Offset int    
}

// MaxSearchLength bounds free-text search input.
const MaxSearchLength = 100
