package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := http.Header{}
	SetHeaders(h, CurrentUser{ID: 7, Email: "a@b.com"})

	u, err := FromHeaders(h)
	require.NoError(t, err)
	assert.Equal(t, 7, u.ID)
	assert.Equal(t, "a@b.com", u.Email)
}

func TestFromHeaders_Missing(t *testing.T) {
	_, err := FromHeaders(http.Header{})
	assert.Error(t, err)

	h := http.Header{}
	h.Set(HeaderEmail, "a@b.com")
	_, err = FromHeaders(h)
	assert.Error(t, err)
}

func TestFromHeaders_MalformedID(t *testing.T) {
	h := http.Header{}
	h.Set(HeaderEmail, "a@b.com")
	h.Set(HeaderUserID, "abc")
	_, err := FromHeaders(h)
	assert.Error(t, err)
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", Middleware(), func(c *gin.Context) {
		u, _ := FromGin(c)
		c.JSON(http.StatusOK, u)
	})
	return r
}

func TestMiddleware_RejectsWithoutHeaders(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error": "could not validate credentials"}`, w.Body.String())
}

func TestMiddleware_PassesIdentityThrough(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	SetHeaders(req.Header, CurrentUser{ID: 3, Email: "c@d.com"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id": 3, "email": "c@d.com"}`, w.Body.String())
}
