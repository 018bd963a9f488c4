package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yahya-git/To-Do-List-MS/contracts/reports"
	"github.com/Yahya-git/To-Do-List-MS/pkg/httperr"
	"github.com/Yahya-git/To-Do-List-MS/pkg/identity"
)

type ReportService interface {
	Count(ctx context.Context, user identity.CurrentUser) (reports.CountReport, error)
	Average(ctx context.Context, user identity.CurrentUser) (reports.AverageReport, error)
	Overdue(ctx context.Context, user identity.CurrentUser) (reports.OverdueReport, error)
	DateMax(ctx context.Context, user identity.CurrentUser) (reports.DateMaxReport, error)
	DayOfWeek(ctx context.Context, user identity.CurrentUser) ([]reports.DayOfWeekReport, error)
}

type ReportHandler struct {
	service ReportService
}

func NewReportHandler(service ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Count(c *gin.Context) {
	user, ok := identity.FromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}
	report, err := h.service.Count(c.Request.Context(), user)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"report": report},
	})
}

func (h *ReportHandler) Average(c *gin.Context) {
	user, ok := identity.FromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}
	report, err := h.service.Average(c.Request.Context(), user)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"report": report},
	})
}

func (h *ReportHandler) Overdue(c *gin.Context) {
	user, ok := identity.FromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}
	report, err := h.service.Overdue(c.Request.Context(), user)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"report": report},
	})
}

func (h *ReportHandler) DateMax(c *gin.Context) {
	user, ok := identity.FromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}
	report, err := h.service.DateMax(c.Request.Context(), user)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"report": report},
	})
}

func (h *ReportHandler) DayOfWeek(c *gin.Context) {
	user, ok := identity.FromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}
	result, err := h.service.DayOfWeek(c.Request.Context(), user)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"reports": result},
	})
}
