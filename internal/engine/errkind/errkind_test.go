package errkind

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineError_ErrorFormatsOpKindAndWrapped(t *testing.T) {
	wrapped := errors.New("boom")
	e := New(Transient, "submit", wrapped)

	assert.Equal(t, "submit: Transient: boom", e.Error())
	assert.ErrorIs(t, e, wrapped)
}

func TestEngineError_ErrorFormatsWithoutWrapped(t *testing.T) {
	e := New(NoRoute, "route", nil)
	assert.Equal(t, "route: NoRoute", e.Error())
}

func TestEngineError_Retryable_OnlyTransient(t *testing.T) {
	for _, k := range []Kind{PermanentExternal, PolicyViolation, Invariant, Cancelled, NoRoute} {
		assert.False(t, New(k, "op", nil).Retryable(), "kind %s must not be retryable", k)
	}
	assert.True(t, New(Transient, "op", nil).Retryable())
}

func TestEngineError_CountsAgainstProviderHealth(t *testing.T) {
	assert.True(t, New(Transient, "op", nil).CountsAgainstProviderHealth())
	assert.True(t, New(PermanentExternal, "op", nil).CountsAgainstProviderHealth())
	assert.False(t, New(Cancelled, "op", nil).CountsAgainstProviderHealth())
	assert.False(t, New(PolicyViolation, "op", nil).CountsAgainstProviderHealth())
	assert.False(t, New(Invariant, "op", nil).CountsAgainstProviderHealth())
	assert.False(t, New(NoRoute, "op", nil).CountsAgainstProviderHealth())
}

func TestEngineError_FailureWeight_DiscountsPermanentExternal(t *testing.T) {
	assert.Equal(t, 1.0, New(Transient, "op", nil).FailureWeight())
	assert.Equal(t, 0.5, New(PermanentExternal, "op", nil).FailureWeight())
	assert.Equal(t, 0.0, New(PolicyViolation, "op", nil).FailureWeight())
	assert.Equal(t, 0.0, New(Cancelled, "op", nil).FailureWeight())
}
