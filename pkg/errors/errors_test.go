package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrNotFound, CodeOf(NotFound("client", nil)))
	assert.Equal(t, ErrQueueFull, CodeOf(QueueFull(20)))
	assert.Equal(t, ErrorCode(0), CodeOf(stderrors.New("plain")))
	assert.Equal(t, ErrorCode(0), CodeOf(nil))
}

func TestCodeOfWrapped(t *testing.T) {
	err := fmt.Errorf("failed to get client: %w", NotFound("client", nil))
	assert.Equal(t, ErrNotFound, CodeOf(err))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "client not found", NotFound("client", nil).Error())

	cause := stderrors.New("boom")
	wrapped := BadRequest("invalid input", cause)
	assert.Equal(t, "invalid input: boom", wrapped.Error())
	assert.Equal(t, cause, stderrors.Unwrap(wrapped))
}

func TestDomainConstructors(t *testing.T) {
	assert.Contains(t, QueueFull(20).Message, "20")
	assert.Contains(t, InvalidCommissionRate(150).Message, "150.0")
	assert.Contains(t, InvalidRating(5.5).Message, "5.5")
	assert.Contains(t, InvalidService("abc").Message, "abc")
}
