package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerPayload struct {
	Kind  string `json:"kind" validate:"required,is-user-kind"`
	Email string `json:"email" validate:"required,email"`
}

type statusPayload struct {
	JobStatus string `json:"job_status" validate:"omitempty,is-job-status"`
	BidStatus string `json:"bid_status" validate:"omitempty,is-bid-status"`
}

func TestValidate_AcceptsValidUserKinds(t *testing.T) {
	v := New()

	for _, kind := range []string{"homeowner", "companyowner"} {
		err := v.Validate(&registerPayload{Kind: kind, Email: "a@example.com"})
		assert.NoError(t, err, "kind %q should be valid", kind)
	}
}

func TestValidate_RejectsUnknownUserKind(t *testing.T) {
	v := New()

	err := v.Validate(&registerPayload{Kind: "admin", Email: "a@example.com"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	// Ошибки привязаны к json-именам полей
	assert.Contains(t, vErr.Errors, "kind")
}

func TestValidate_JobStatusAcceptsClosedAlias(t *testing.T) {
	v := New()

	for _, status := range []string{"open", "inprogress", "completed", "closed"} {
		err := v.Validate(&statusPayload{JobStatus: status})
		assert.NoError(t, err, "status %q should be valid", status)
	}

	err := v.Validate(&statusPayload{JobStatus: "archived"})
	assert.Error(t, err)
}

func TestValidate_BidStatuses(t *testing.T) {
	v := New()

	for _, status := range []string{"pending", "accepted", "rejected", "completed"} {
		err := v.Validate(&statusPayload{BidStatus: status})
		assert.NoError(t, err, "status %q should be valid", status)
	}

	err := v.Validate(&statusPayload{BidStatus: "withdrawn"})
	assert.Error(t, err)
}
