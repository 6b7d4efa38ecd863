package errorx

import "fmt"

// DomainStateErrorf creates a KnowledgeBaseError with type ErrorTypeDomainState and a formatted message
func DomainStateErrorf(format string, args ...any) KnowledgeBaseError {
	return KnowledgeBaseError{
		Type:    ErrorTypeDomainState,
		Message: fmt.Sprintf(format, args...),
	}
}

func IsDomainStateError(e error) bool {
	kbE, ok := IsKnowledgeBaseError(e)
	if !ok {
		return false
	}

	return kbE.Type == ErrorTypeDomainState
}
