package identity

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Identity travels between services as plain headers attached by the gateway
// after it has verified the caller's access token. Backend services have no
// session store and no copy of the signing secret; these headers are the only
// identity they see.
const (
	HeaderEmail  = "X-User-Email"
	HeaderUserID = "X-User-Id"

	contextKey = "current_user"
)

// CurrentUser is authenticated by channel, not by value: the struct itself
// carries no proof.
type CurrentUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// SetHeaders attaches identity headers to an outbound service call.
func SetHeaders(h http.Header, u CurrentUser) {
	h.Set(HeaderEmail, u.Email)
	h.Set(HeaderUserID, strconv.Itoa(u.ID))
}

// FromHeaders parses identity headers, failing when either is missing or the
// id is not numeric.
func FromHeaders(h http.Header) (CurrentUser, error) {
	email := h.Get(HeaderEmail)
	rawID := h.Get(HeaderUserID)
	if email == "" || rawID == "" {
		return CurrentUser{}, fmt.Errorf("missing identity headers")
	}

	id, err := strconv.Atoi(rawID)
	if err != nil {
		return CurrentUser{}, fmt.Errorf("malformed %s header: %w", HeaderUserID, err)
	}

	return CurrentUser{ID: id, Email: email}, nil
}

// Middleware requires valid identity headers on every request and rejects
// otherwise. There is deliberately no anonymous fallback.
//
// TODO: anyone with network access to a backend port can impersonate any user
// by setting these headers; replace with signed internal service tokens or
// mTLS between gateway and services.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := FromHeaders(c.Request.Header)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			c.Abort()
			return
		}

		c.Set(contextKey, user)
		c.Next()
	}
}

// FromGin returns the CurrentUser stored by Middleware.
func FromGin(c *gin.Context) (CurrentUser, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return CurrentUser{}, false
	}
	u, ok := v.(CurrentUser)
	return u, ok
}

// SetGin stores a CurrentUser on the request context. Used by the gateway
// after token verification.
func SetGin(c *gin.Context, u CurrentUser) {
	c.Set(contextKey, u)
}
