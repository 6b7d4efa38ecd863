package errorx

import "fmt"

// DocumentLoadFailuref creates a KnowledgeBaseError with type ErrorTypeDocumentLoadFailure and a formatted message.
// Load failures are aggregated per document by the bulk loader, never raised.
func DocumentLoadFailuref(format string, args ...any) KnowledgeBaseError {
	return KnowledgeBaseError{
		Type:    ErrorTypeDocumentLoadFailure,
		Message: fmt.Sprintf(format, args...),
	}
}

func IsDocumentLoadFailureError(e error) bool {
	kbE, ok := IsKnowledgeBaseError(e)
	if !ok {
		return false
	}

	return kbE.Type == ErrorTypeDocumentLoadFailure
}
