package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoplay/server/pkg/apperrors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestOK(t *testing.T) {
	c, w := newTestContext()
	c.Set("request_id", "req-1")

	OK(c, gin.H{"name": "test"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Nil(t, resp.Error)
}

func TestCreated(t *testing.T) {
	c, w := newTestContext()

	Created(c, gin.H{"id": "u1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	// A request id is generated when the middleware did not set one.
	assert.NotEmpty(t, resp.RequestID)
}

func TestFailAppError(t *testing.T) {
	c, w := newTestContext()

	Fail(c, apperrors.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, apperrors.CodeNotFound, resp.Error.Code)
}

func TestFailUnknownError(t *testing.T) {
	c, w := newTestContext()

	Fail(c, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, apperrors.CodeInternal, resp.Error.Code)
}
