package errorx

import "fmt"

// ConnectionFailuref creates a KnowledgeBaseError with type ErrorTypeConnectionFailure and a formatted message.
// hosts is the host set that was attempted when the connection failed.
func ConnectionFailuref(hosts []string, format string, args ...any) KnowledgeBaseError {
	return KnowledgeBaseError{
		Type:    ErrorTypeConnectionFailure,
		Message: fmt.Sprintf(format, args...),
		Hosts:   hosts,
	}
}

func IsConnectionFailureError(e error) bool {
	kbE, ok := IsKnowledgeBaseError(e)
	if !ok {
		return false
	}

	return kbE.Type == ErrorTypeConnectionFailure
}
