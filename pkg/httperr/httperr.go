package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Taxonomy shared by every service. Repository and service failures are
// translated to one of these at the handler boundary; anything unrecognized
// becomes a 500 with a generic message so internal detail never leaks.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("not authorized to perform action")
	ErrConflict           = errors.New("resource already exists")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrForbidden          = errors.New("action forbidden")
	ErrInternal           = errors.New("internal error")

	// Domain conditions with their own messages.
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrMaxTasksReached = errors.New("maximum number of tasks reached")
	ErrNoReportData    = errors.New("there are no completed tasks")
	ErrInvalidCreds    = errors.New("invalid credentials")
	ErrUnverifiedEmail = errors.New("kindly verify your email first, verification email has been sent")
	ErrOAuthRestricted = errors.New("change your google account password instead")
	ErrFalseToken      = errors.New("invalid or expired verification token")
)

// StatusOf maps an error to an HTTP status code.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoReportData):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCreds), errors.Is(err, ErrFalseToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, ErrPreconditionFailed), errors.Is(err, ErrUnverifiedEmail):
		return http.StatusPreconditionFailed
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrMaxTasksReached), errors.Is(err, ErrOAuthRestricted):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Write renders the uniform error envelope. Unrecognized errors get a generic
// message.
func Write(c *gin.Context, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "something went wrong"
	}
	c.JSON(status, gin.H{"error": msg})
}

// WriteMsg renders the envelope with err's status but a custom message.
func WriteMsg(c *gin.Context, err error, msg string) {
	c.JSON(StatusOf(err), gin.H{"error": msg})
}
