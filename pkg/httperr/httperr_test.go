package httperr

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrNoReportData, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrInvalidCreds, http.StatusUnauthorized},
		{ErrFalseToken, http.StatusUnauthorized},
		{ErrDuplicateEmail, http.StatusConflict},
		{ErrUnverifiedEmail, http.StatusPreconditionFailed},
		{ErrMaxTasksReached, http.StatusForbidden},
		{ErrOAuthRestricted, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, StatusOf(tc.err), "error: %v", tc.err)
	}
}

func TestStatusOf_Wrapped(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), ErrMaxTasksReached)
	assert.Equal(t, http.StatusForbidden, StatusOf(wrapped))
}

func TestWrite_HidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Write(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "something went wrong"}`, w.Body.String())
}

func TestWrite_DomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Write(c, ErrDuplicateEmail)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error": "email already exists"}`, w.Body.String())
}
