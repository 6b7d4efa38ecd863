package errorx

type ErrorType string

const (
	// The Unspecified type should not be used, only useful to assert whether or not an error is a KnowledgeBaseError during cast
	ErrorTypeUnspecified         = ErrorType("")
	ErrorTypeConnectionFailure   = ErrorType("CONNECTION_FAILURE")
	ErrorTypeEngineError         = ErrorType("ENGINE_ERROR")
	ErrorTypeDomainState         = ErrorType("DOMAIN_STATE_ERROR")
	ErrorTypeDocumentLoadFailure = ErrorType("DOCUMENT_LOAD_FAILURE")
	ErrorTypeInvalidArgument     = ErrorType("INVALID_ARGUMENT")
)

func ParseErrorType(s string) (ErrorType, error) {
	e := ErrorType(s)
	if err := e.Validate(); err != nil {
		return ErrorTypeUnspecified, err
	}

	return e, nil
}

func (e ErrorType) String() string {
	return string(e)
}

func (e ErrorType) Validate() error {
	switch e {
	case ErrorTypeConnectionFailure,
		ErrorTypeEngineError,
		ErrorTypeDomainState,
		ErrorTypeDocumentLoadFailure,
		ErrorTypeInvalidArgument:
		return nil
	default:
		return InvalidArgumentErrorf("invalid error type: %s", e)
	}
}
