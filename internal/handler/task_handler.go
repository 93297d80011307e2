package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"redirectflow-go/internal/apperrors"
	"redirectflow-go/internal/dto"
	"redirectflow-go/internal/model"
	"redirectflow-go/internal/service"
	"redirectflow-go/response"
)

func CreateTaskHandler(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := service.CreateTask(req)
	if err != nil {
		zap.L().Warn("Task creation failed",
			zap.Error(err),
			zap.Uint("member_id", req.MemberID),
			zap.String("title", req.Title),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(task, "Task created"))
}

// ListTasksHandler filters by member, status and a title/notes search
// term. Deleted tasks never appear.
func ListTasksHandler(c *gin.Context) {
	var memberID uint
	if s := c.Query("member"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			_ = c.Error(apperrors.InvalidRequestError("member must be an integer id"))
			return
		}
		memberID = uint(id)
	}

	status := model.TaskStatus(c.Query("status"))
	search := c.Query("search")

	tasks, err := service.ListTasks(memberID, status, search)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(tasks, "success"))
}

func UpdateTaskHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := service.UpdateTask(id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(task, "Task updated"))
}

// UpdateTaskStatusHandler toggles completion; moving into completed
// stamps CompletedAt, moving back clears it.
func UpdateTaskStatusHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := service.SetTaskStatus(id, model.TaskStatus(req.Status))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(task, "Task status updated"))
}

func DeleteTaskHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := service.DeleteTask(id); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK("", "Task deleted"))
}
