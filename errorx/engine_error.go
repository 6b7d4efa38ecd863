package errorx

import "fmt"

// EngineErrorf creates a KnowledgeBaseError with type ErrorTypeEngineError and a formatted message.
// statusCode is the engine response status when known, zero otherwise.
func EngineErrorf(statusCode int, format string, args ...any) KnowledgeBaseError {
	return KnowledgeBaseError{
		Type:       ErrorTypeEngineError,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
	}
}

func IsEngineError(e error) bool {
	kbE, ok := IsKnowledgeBaseError(e)
	if !ok {
		return false
	}

	return kbE.Type == ErrorTypeEngineError
}
