package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/pkg/httperr"
	"github.com/Yahya-git/To-Do-List-MS/pkg/identity"
	"github.com/Yahya-git/To-Do-List-MS/tasks-service/internal/model"
	"github.com/Yahya-git/To-Do-List-MS/tasks-service/internal/repository"
	"github.com/Yahya-git/To-Do-List-MS/tasks-service/internal/service/report"
)

type TaskStore interface {
	Create(ctx context.Context, t *model.Task) (*model.Task, error)
	Update(ctx context.Context, id, userID int, p repository.UpdateTaskParams) (*model.Task, error)
	Delete(ctx context.Context, id, userID int) error
	Get(ctx context.Context, id, userID int) (*model.Task, error)
	List(ctx context.Context, userID int, search, sort string) ([]model.Task, error)
	Similar(ctx context.Context, userID int) ([]model.SimilarTask, error)
	CountByUser(ctx context.Context, userID int) (int, error)
}

type AttachmentStore interface {
	Create(ctx context.Context, taskID int, fileName string, data []byte) (*model.Attachment, error)
	Get(ctx context.Context, fileID, taskID int) (*model.Attachment, error)
}

type TaskHandler struct {
	repo        TaskStore
	attachments AttachmentStore
	users       report.UserDirectory
	maxTasks    int
	logger      *zap.Logger
}

func NewTaskHandler(repo TaskStore, attachments AttachmentStore, users report.UserDirectory, maxTasks int, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		repo:        repo,
		attachments: attachments,
		users:       users,
		maxTasks:    maxTasks,
		logger:      logger,
	}
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted *bool      `json:"is_completed"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	user, ok := identity.FromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task payload"})
		return
	}

	count, err := h.repo.CountByUser(c.Request.Context(), user.ID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	if count >= h.maxTasks {
		h.logger.Warn("Task quota reached",
			zap.Int("user_id", user.ID),
			zap.Int("max_tasks", h.maxTasks),
		)
		httperr.Write(c, httperr.ErrMaxTasksReached)
		return
	}

	task := &model.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CompletedAt: req.CompletedAt,
		IsCompleted: req.IsCompleted,
		UserID:      user.ID,
	}
	created, err := h.repo.Create(c.Request.Context(), task)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "successfully created task",
		"data":   gin.H{"task": created},
	})
}

func (h *TaskHandler) Update(c *gin.Context) {
	user, ok := identity.FromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task payload"})
		return
	}

	// Marking complete stamps the completion time; unmarking clears it.
	var completedAt *time.Time
	if req.IsCompleted != nil && *req.IsCompleted {
		now := time.Now()
		completedAt = &now
	}

	updated, err := h.repo.Update(c.Request.Context(), id, user.ID, repository.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		IsCompleted: req.IsCompleted,
		CompletedAt: completedAt,
	})
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "successfully updated task",
		"data":   gin.H{"task": updated},
	})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	user, ok := identity.FromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id, user.ID); err != nil {
		httperr.Write(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) List(c *gin.Context) {
	user, ok := identity.FromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	search := c.DefaultQuery("search", "")
	sort := c.DefaultQuery("sort", "due_date")

	tasks, err := h.repo.List(c.Request.Context(), user.ID, search, sort)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	if len(tasks) == 0 {
		httperr.WriteMsg(c, httperr.ErrNotFound, "there are no tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"tasks": tasks},
	})
}

func (h *TaskHandler) Similar(c *gin.Context) {
	user, ok := identity.FromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	similar, err := h.repo.Similar(c.Request.Context(), user.ID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	if len(similar) == 0 {
		httperr.WriteMsg(c, httperr.ErrNotFound, "there are no similar tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"tasks": similar},
	})
}

func (h *TaskHandler) Get(c *gin.Context) {
	user, ok := identity.FromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	task, err := h.repo.Get(c.Request.Context(), id, user.ID)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"task": task},
	})
}

// All returns the user's profile (from users-service) alongside their tasks.
func (h *TaskHandler) All(c *gin.Context) {
	user, ok := identity.FromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	profile, err := h.users.GetUser(c.Request.Context(), user)
	if err != nil {
		h.logger.Error("Failed to fetch user profile", zap.Int("user_id", user.ID), zap.Error(err))
		httperr.Write(c, err)
		return
	}

	tasks, err := h.repo.List(c.Request.Context(), user.ID, "", "due_date")
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"user": profile, "tasks": tasks},
	})
}

func (h *TaskHandler) UploadFile(c *gin.Context) {
	user, ok := identity.FromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	if _, err := h.repo.Get(c.Request.Context(), taskID, user.ID); err != nil {
		httperr.Write(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		httperr.Write(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	attachment, err := h.attachments.Create(c.Request.Context(), taskID, fileHeader.Filename, data)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "successfully attached file",
		"file_name": attachment.FileName,
		"file_id":   strconv.Itoa(attachment.ID),
	})
}

func (h *TaskHandler) DownloadFile(c *gin.Context) {
	user, ok := identity.FromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	fileID, err := strconv.Atoi(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return
	}

	if _, err := h.repo.Get(c.Request.Context(), taskID, user.ID); err != nil {
		httperr.Write(c, err)
		return
	}

	file, err := h.attachments.Get(c.Request.Context(), fileID, taskID)
	if err != nil {
		httperr.WriteMsg(c, err, "file with id: "+strconv.Itoa(fileID)+" not found")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Data(http.StatusAccepted, "application/octet-stream", file.Data)
}
