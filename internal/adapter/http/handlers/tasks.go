package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/M1estere/To-Do-API/internal/adapter/http/dto"
	"github.com/M1estere/To-Do-API/internal/adapter/http/mapper"
	"github.com/M1estere/To-Do-API/internal/adapter/http/middleware"
	"github.com/M1estere/To-Do-API/internal/adapter/http/validation"
	"github.com/M1estere/To-Do-API/internal/core/domain"
	"github.com/M1estere/To-Do-API/internal/core/ports"
	"github.com/M1estere/To-Do-API/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailListTasks)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		respondTaskNotFound(c)
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailGetTask, zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondTaskError(c, domain.NewValidationError(), apierrors.MsgFailCreateTask)
		return
	}

	input, err := validation.BuildCreateTaskInput(body)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondTaskError(c, domain.NewValidationError(), apierrors.MsgFailUpdateTask)
		return
	}

	input, err := validation.BuildUpdateTaskInput(body)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		respondTaskNotFound(c)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, input)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailUpdateTask, zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		respondTaskNotFound(c)
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		respondTaskError(c, err, apierrors.MsgFailDeleteTask, zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: apierrors.GetTransMsg(apierrors.MsgTaskDeleted, middleware.GetLang(c), nil),
	})
}

// parseTaskID rejects anything that cannot name a stored task.
func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		return 0, false
	}
	return taskID, true
}
