package observability

import "strings"

var sensitiveFields = []string{"password", "token", "secret", "apikey", "refreshtoken", "accesstoken"}

// Sanitize returns a copy of v with sensitive keys redacted, recursing into maps and slices.
func Sanitize(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			if isSensitive(key) {
				out[key] = "[REDACTED]"
				continue
			}
			out[key] = Sanitize(value)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, value := range typed {
			out[i] = Sanitize(value)
		}
		return out
	default:
		return v
	}
}

func isSensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, field := range sensitiveFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}
