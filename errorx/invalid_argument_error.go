package errorx

import "fmt"

// InvalidArgumentErrorf creates a KnowledgeBaseError with type ErrorTypeInvalidArgument and a formatted message
func InvalidArgumentErrorf(format string, args ...any) KnowledgeBaseError {
	return KnowledgeBaseError{
		Type:    ErrorTypeInvalidArgument,
		Message: fmt.Sprintf(format, args...),
	}
}

func IsInvalidArgumentError(e error) bool {
	kbE, ok := IsKnowledgeBaseError(e)
	if !ok {
		return false
	}

	return kbE.Type == ErrorTypeInvalidArgument
}
