package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/gateway/internal/model"
	"github.com/Yahya-git/To-Do-List-MS/pkg/circuitbreaker"
	"github.com/Yahya-git/To-Do-List-MS/pkg/identity"
	"github.com/Yahya-git/To-Do-List-MS/pkg/trace"
)

// Proxy forwards requests to the backing services verbatim: same path,
// same query string, and the backend's status and body passed through
// untouched. The caller's identity travels as headers. Each backend sits
// behind its own circuit breaker so a dead service fails fast instead of
// tying up gateway connections.
type Proxy struct {
	usersURL   string
	tasksURL   string
	httpClient *http.Client
	breakers   map[string]*circuitbreaker.CircuitBreaker
	logger     *zap.Logger
}

func NewProxy(usersURL, tasksURL string, timeout time.Duration, logger *zap.Logger) *Proxy {
	return &Proxy{
		usersURL: usersURL,
		tasksURL: tasksURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breakers: map[string]*circuitbreaker.CircuitBreaker{
			"users-service": circuitbreaker.New(circuitbreaker.DefaultConfig()),
			"tasks-service": circuitbreaker.New(circuitbreaker.DefaultConfig()),
		},
		logger: logger,
	}
}

func (p *Proxy) forward(c *gin.Context, serviceName, baseURL string, body io.Reader, contentType string) {
	url := baseURL + c.Request.URL.Path
	if q := c.Request.URL.RawQuery; q != "" {
		url += "?" + q
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, url, body)
	if err != nil {
		p.logger.Error("Failed to build upstream request", zap.String("url", url), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}

	if contentType == "" {
		contentType = c.GetHeader("Content-Type")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if requestID := trace.FromContext(c.Request.Context()); requestID != "" {
		req.Header.Set(trace.HeaderName, requestID)
	}
	if user, ok := identity.FromGin(c); ok {
		identity.SetHeaders(req.Header, user)
	}

	var resp *http.Response
	err = p.breakers[serviceName].Execute(func() error {
		var doErr error
		resp, doErr = p.httpClient.Do(req)
		return doErr
	})
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrOpen) {
			p.logger.Warn("Circuit breaker open", zap.String("service", serviceName))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": serviceName + " temporarily unavailable"})
			return
		}
		p.logger.Error("Upstream request failed",
			zap.String("service", serviceName),
			zap.String("url", url),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": serviceName + " unreachable"})
		return
	}
	defer resp.Body.Close()

	extraHeaders := map[string]string{}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		extraHeaders["Content-Disposition"] = cd
	}
	c.DataFromReader(resp.StatusCode, resp.ContentLength, resp.Header.Get("Content-Type"), resp.Body, extraHeaders)
}

// ForwardUsers passes the request to users-service as-is.
func (p *Proxy) ForwardUsers(c *gin.Context) {
	p.forward(c, "users-service", p.usersURL, c.Request.Body, "")
}

// ForwardTasks passes the request to tasks-service as-is.
func (p *Proxy) ForwardTasks(c *gin.Context) {
	p.forward(c, "tasks-service", p.tasksURL, c.Request.Body, "")
}

// ForwardTaskWrite normalizes datetime fields in the body before
// forwarding, so clients may send several formats while tasks-service
// only ever parses RFC 3339.
func (p *Proxy) ForwardTaskWrite(c *gin.Context) {
	var payload model.TaskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task payload"})
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	p.forward(c, "tasks-service", p.tasksURL, bytes.NewReader(body), "application/json")
}
