package errorx

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	t.Run("should return knowledge base error from stack", func(t *testing.T) {
		err := DomainStateErrorf("test")
		serr := errors.WithStack(err)

		_, ok := IsKnowledgeBaseError(serr)
		assert.True(t, ok)
	})

	t.Run("should return a knowledge base error without stack", func(t *testing.T) {
		err := DomainStateErrorf("test")

		_, ok := IsKnowledgeBaseError(err)
		assert.True(t, ok)
	})

	t.Run("should return is domain state from stack", func(t *testing.T) {
		err := errors.WithStack(DomainStateErrorf("test"))
		assert.True(t, IsDomainStateError(err))
	})

	t.Run("should return is domain state from wrapped error", func(t *testing.T) {
		err := errors.Wrap(DomainStateErrorf("test"), "outer")
		assert.True(t, IsDomainStateError(err))
	})

	t.Run("should not match a plain error", func(t *testing.T) {
		_, ok := IsKnowledgeBaseError(errors.New("test"))
		assert.False(t, ok)
	})

	t.Run("should carry the attempted hosts on connection failures", func(t *testing.T) {
		hosts := []string{"http://localhost:9200", "http://localhost:9201"}
		err := ConnectionFailuref(hosts, "unable to connect to the knowledge base")

		assert.True(t, IsConnectionFailureError(err))
		kbE, ok := IsKnowledgeBaseError(err)
		require.True(t, ok)
		assert.Equal(t, hosts, kbE.Hosts)
		assert.Equal(t, "[CONNECTION_FAILURE] unable to connect to the knowledge base", err.Error())
	})

	t.Run("should carry the status code on engine errors", func(t *testing.T) {
		err := EngineErrorf(503, "search engine returned an error")

		assert.True(t, IsEngineError(err))
		kbE, ok := IsKnowledgeBaseError(err)
		require.True(t, ok)
		assert.Equal(t, 503, kbE.StatusCode)
	})

	t.Run("should keep the original error out of the rendered message", func(t *testing.T) {
		cause := errors.New("dial tcp: connection refused")
		err := ConnectionFailuref([]string{"http://localhost:9200"}, "unable to connect").WithOriginalError(cause)

		assert.Equal(t, "[CONNECTION_FAILURE] unable to connect", err.Error())
		assert.Equal(t, cause, err.OriginalError)
	})

	t.Run("should append details to existing error", func(t *testing.T) {
		kbErr := EngineErrorf(400, "bulk request rejected")
		kbErr = kbErr.WithDetails(DocumentLoadFailuref("document a1 was not indexed"))
		assert.Equal(t, KnowledgeBaseError{
			Type:       ErrorTypeEngineError,
			Message:    "bulk request rejected",
			StatusCode: 400,
			Details: []KnowledgeBaseError{
				{
					Type:    ErrorTypeDocumentLoadFailure,
					Message: "document a1 was not indexed",
				},
			},
		}, kbErr)

		// Append more details
		kbErr = kbErr.WithDetails(DocumentLoadFailuref("document a2 was not indexed"))
		assert.Equal(t, KnowledgeBaseError{
			Type:       ErrorTypeEngineError,
			Message:    "bulk request rejected",
			StatusCode: 400,
			Details: []KnowledgeBaseError{
				{
					Type:    ErrorTypeDocumentLoadFailure,
					Message: "document a1 was not indexed",
				},
				{
					Type:    ErrorTypeDocumentLoadFailure,
					Message: "document a2 was not indexed",
				},
			},
		}, kbErr)
	})
}

func TestNewKnowledgeBaseErrorFromMessage(t *testing.T) {
	t.Run("should parse a rendered error message", func(t *testing.T) {
		kbE, err := NewKnowledgeBaseErrorFromMessage("[DOMAIN_STATE_ERROR] index \"kb$faq\" does not exist")
		require.NoError(t, err)
		assert.Equal(t, ErrorTypeDomainState, kbE.Type)
		assert.Equal(t, "index \"kb$faq\" does not exist", kbE.Message)
	})

	t.Run("should reject a message without a type prefix", func(t *testing.T) {
		_, err := NewKnowledgeBaseErrorFromMessage("plain message")
		require.Error(t, err)
	})

	t.Run("should reject an unknown type prefix", func(t *testing.T) {
		_, err := NewKnowledgeBaseErrorFromMessage("[SOMETHING_ELSE] message")
		require.Error(t, err)
		assert.True(t, IsInvalidArgumentError(err))
	})
}

func TestErrorType(t *testing.T) {
	t.Run("should validate all known types", func(t *testing.T) {
		for _, eT := range []ErrorType{
			ErrorTypeConnectionFailure,
			ErrorTypeEngineError,
			ErrorTypeDomainState,
			ErrorTypeDocumentLoadFailure,
			ErrorTypeInvalidArgument,
		} {
			assert.NoError(t, eT.Validate())
		}
	})

	t.Run("should not validate the unspecified type", func(t *testing.T) {
		assert.Error(t, ErrorTypeUnspecified.Validate())
	})
}
