package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/d9705996/teamconnect/internal/api/respond"
	"github.com/d9705996/teamconnect/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) respond.ErrorBody {
	t.Helper()
	var body respond.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	respond.JSON(w, http.StatusCreated, respond.Message{Message: "ok"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
}

func TestList_NilSlice(t *testing.T) {
	w := httptest.NewRecorder()
	var items []string
	respond.List(w, http.StatusOK, items)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestError_ClassifiedError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
	w := httptest.NewRecorder()
	respond.Error(w, req, fmt.Errorf("create employee: %w", apperr.ErrDuplicateEmail))

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "duplicate_email", body.Code)
	assert.Equal(t, apperr.ErrDuplicateEmail.Message, body.Error)
	assert.Empty(t, body.Details)
}

func TestError_UnclassifiedError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	w := httptest.NewRecorder()
	respond.Error(w, req, errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "internal", body.Code)
	assert.Equal(t, "disk on fire", body.Details)
}

func TestError_ConfigurationErrorCarriesDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/companies", nil)
	w := httptest.NewRecorder()
	respond.Error(w, req, apperr.ErrMissingSeed)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "missing_seed", body.Code)
	assert.NotEmpty(t, body.Details)
}

func TestErrorMessage(t *testing.T) {
	w := httptest.NewRecorder()
	respond.ErrorMessage(w, http.StatusBadRequest, "missing_tenant", "x-company-id header is required")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "missing_tenant", body.Code)
	assert.Equal(t, "x-company-id header is required", body.Error)
}
