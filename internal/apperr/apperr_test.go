package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/d9705996/teamconnect/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestKindOf_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("create employee: %w", apperr.ErrDuplicateEmail)

	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)
	assert.NotErrorIs(t, err, apperr.ErrDuplicateRoleName)
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(errors.New("boom")))
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(nil))
}

func TestKind_Status(t *testing.T) {
	cases := map[apperr.Kind]int{
		apperr.KindValidation:    http.StatusBadRequest,
		apperr.KindUnauthorized:  http.StatusUnauthorized,
		apperr.KindForbidden:     http.StatusForbidden,
		apperr.KindNotFound:      http.StatusNotFound,
		apperr.KindConflict:      http.StatusConflict,
		apperr.KindConfiguration: http.StatusInternalServerError,
		apperr.KindInternal:      http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.Status(), kind.String())
	}
}

func TestAs_ReturnsCode(t *testing.T) {
	err := fmt.Errorf("toggle like: %w", apperr.ErrPostNotFound)
	e, ok := apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, "post_not_found", e.Code)
}
