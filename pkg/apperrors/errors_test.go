package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIs_MatchesPredefinedErrors(t *testing.T) {
	err := error(ErrBidNotPending)
	assert.True(t, Is(err, ErrBidNotPending))
	assert.False(t, Is(err, ErrPostingNotOpen))
}

func TestWithDetails_DoesNotMutateOriginal(t *testing.T) {
	detailed := ErrPostingNotOpen.WithDetails(map[string]string{"posting_id": "p1"})

	assert.Nil(t, ErrPostingNotOpen.Details, "predefined error must stay clean")
	assert.NotNil(t, detailed.Details)
	assert.True(t, Is(detailed, ErrPostingNotOpen), "details must not break identity")
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := StoreUnavailable(cause)

	assert.Equal(t, CodeStoreUnavailable, err.Code)
	assert.Equal(t, http.StatusServiceUnavailable, err.HTTPCode)
	assert.True(t, errors.Is(err, cause))
}

func TestErrConcurrentModification_IsRetryableConflict(t *testing.T) {
	err := ErrConcurrentModification("posting")

	assert.Equal(t, CodeConflict, err.Code)
	assert.Equal(t, "posting", err.Domain)
	assert.Equal(t, http.StatusConflict, err.HTTPCode)
}

func TestAs_ExtractsAppErrorThroughWrapping(t *testing.T) {
	var appErr *AppError
	wrapped := ErrDuplicateReview.WithError(errors.New("unique constraint"))

	require.True(t, As(wrapped, &appErr))
	assert.Equal(t, CodeDuplicate, appErr.Code)
}
