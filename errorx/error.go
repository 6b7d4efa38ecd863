package errorx

import (
	"fmt"
	"regexp"

	"github.com/pkg/errors"
)

type KnowledgeBaseError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`

	// Hosts holds the attempted host set when the engine could not be reached.
	Hosts []string `json:"hosts,omitempty"`
	// StatusCode holds the engine response status when the engine rejected the request.
	StatusCode int `json:"statusCode,omitempty"`

	Details []KnowledgeBaseError `json:"details,omitempty"`

	OriginalError error `json:"-"` // Not returned to clients
}

var _ error = (*KnowledgeBaseError)(nil)

func (e KnowledgeBaseError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type.String(), e.Message)
}

// WithOriginalError returns a copy of the error carrying the underlying cause.
func (e KnowledgeBaseError) WithOriginalError(err error) KnowledgeBaseError {
	e.OriginalError = err
	return e
}

// WithDetails returns a copy of the error with the given errors appended to its details.
func (e KnowledgeBaseError) WithDetails(details ...KnowledgeBaseError) KnowledgeBaseError {
	e.Details = append(e.Details, details...)
	return e
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e KnowledgeBaseError) Unwrap() error {
	return e.OriginalError
}

func NewKnowledgeBaseErrorFromMessage(msg string) (*KnowledgeBaseError, error) {
	r, _ := regexp.Compile(`\[(.*?)\] (.*)`)
	m := r.FindStringSubmatch(msg)
	if m == nil || len(m) < 2 {
		return nil, fmt.Errorf("%q is not a valid error type", msg)
	}

	eT, err := ParseErrorType(m[1])
	if err != nil {
		return nil, err
	}

	if len(m) >= 3 {
		msg = m[2]
	}

	return &KnowledgeBaseError{
		Type:    eT,
		Message: msg,
	}, nil
}

func IsKnowledgeBaseError(e error) (*KnowledgeBaseError, bool) {
	e = errors.Cause(e)

	var kbE KnowledgeBaseError
	switch t := e.(type) {
	case KnowledgeBaseError:
		kbE = t
	case *KnowledgeBaseError:
		kbE = *t
	default:
		return nil, false
	}

	if kbE.Type == ErrorTypeUnspecified {
		return nil, false
	}

	return &kbE, true
}
