package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/d9705996/teamconnect/internal/apperr"
	"github.com/d9705996/teamconnect/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestActingUser(t *testing.T) {
	verified := auth.AuthContext{TenantID: 1, UserID: 5, Verified: true}

	id, err := actingUser(verified, nil, "authorId")
	require.NoError(t, err)
	assert.Equal(t, uint(5), id)

	id, err = actingUser(verified, ptr(uint(5)), "authorId")
	require.NoError(t, err)
	assert.Equal(t, uint(5), id)

	_, err = actingUser(verified, ptr(uint(6)), "authorId")
	require.ErrorIs(t, err, apperr.ErrActorMismatch)

	header := auth.AuthContext{TenantID: 1}
	id, err = actingUser(header, ptr(uint(6)), "authorId")
	require.NoError(t, err)
	assert.Equal(t, uint(6), id)

	_, err = actingUser(header, nil, "userId")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "userId")
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/users/12", nil)
	req.SetPathValue("id", "12")
	id, err := pathID(req, "id")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	for _, raw := range []string{"", "0", "-3", "x"} {
		req.SetPathValue("id", raw)
		_, err := pathID(req, "id")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "raw %q", raw)
	}
}

func TestDecode_ValidationMessageUsesJSONNames(t *testing.T) {
	body := strings.NewReader(`{"name":"","email":"nope","password":"short","roleId":1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users", body)
	w := httptest.NewRecorder()

	var dst createUserRequest
	ok := decode(w, req, &dst)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name is required")
	assert.Contains(t, w.Body.String(), "email must be a valid email address")
	assert.Contains(t, w.Body.String(), "password must be at least 8 characters")
}

func TestDecode_PasswordLimitCountsBytes(t *testing.T) {
	body := `{"name":"Élia","email":"elia@acme.io","password":"` + strings.Repeat("ã", 40) + `","roleId":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	w := httptest.NewRecorder()

	var dst createUserRequest
	assert.False(t, decode(w, req, &dst))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password must be at most 72 bytes")
}

func TestDecode_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/roles", strings.NewReader(`{"name":`))
	w := httptest.NewRecorder()

	var dst createRoleRequest
	assert.False(t, decode(w, req, &dst))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_body")
}
