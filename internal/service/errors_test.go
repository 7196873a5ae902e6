package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", ErrAlreadyRegistered)
	assert.ErrorIs(t, wrapped, ErrAlreadyRegistered)
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, "Email already registered", PublicMessage(wrapped))

	cause := errors.New("dial tcp: i/o timeout")
	upstream := wrap(ErrGatewayFailure, cause)
	assert.ErrorIs(t, upstream, ErrGatewayFailure)
	assert.ErrorIs(t, upstream, cause)
	assert.Equal(t, KindUpstream, KindOf(upstream))
	assert.NotContains(t, PublicMessage(upstream), "timeout")

	plain := errors.New("sql: connection refused")
	assert.Equal(t, KindInternal, KindOf(plain))
	assert.NotContains(t, PublicMessage(plain), "sql")
	assert.False(t, errors.Is(ErrDonorNotFound, ErrAttendeeNotFound))
}
