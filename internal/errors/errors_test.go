package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/questledger/internal/errors"
)

func TestCode_UnwrapsAppError(t *testing.T) {
	err := fmt.Errorf("submit: %w", errors.NewQuizNotFoundError("lesson-1"))

	assert.Equal(t, errors.ErrCodeQuizNotFound, errors.Code(err))

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestCode_PlainErrorIsInternal(t *testing.T) {
	assert.Equal(t, errors.ErrCodeInternal, errors.Code(stderrors.New("boom")))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, errors.IsRetryable(errors.NewConflictError(stderrors.New("busy"))))
	assert.False(t, errors.IsRetryable(errors.NewValidationError("lessonId", "required")))
	assert.False(t, errors.IsRetryable(nil))
}

func TestUserNotFoundIsInternalFailure(t *testing.T) {
	err := errors.NewUserNotFoundError("u1")

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.NotContains(t, err.Message, "u1")
	assert.Contains(t, err.Error(), "u1")
}

func TestWithDetail_DoesNotMutateOriginal(t *testing.T) {
	base := errors.NewValidationError("answers", "must be an array")
	extended := base.WithDetail("answers[0].qid", "required")

	assert.Len(t, base.Details, 1)
	assert.Len(t, extended.Details, 2)
	assert.Equal(t, "required", extended.Details["answers[0].qid"])
}
