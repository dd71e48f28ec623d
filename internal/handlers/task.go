package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"project-tracker/internal/apperror"
	"project-tracker/internal/models"
	"project-tracker/internal/services"
)

func (h *Handler) respondTasks(c *gin.Context, tasks []models.Task, err error) {
	if err != nil {
		h.respondError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	ok(c, http.StatusOK, tasks)
}

func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), principal(c))
	h.respondTasks(c, tasks, err)
}

func (h *Handler) ListOverdueTasks(c *gin.Context) {
	tasks, err := h.tasks.ListOverdue(c.Request.Context(), principal(c))
	h.respondTasks(c, tasks, err)
}

func (h *Handler) listTasksByID(c *gin.Context, param string, find func(context.Context, models.Principal, uint) ([]models.Task, error)) {
	id, good := h.idParam(c, param)
	if !good {
		return
	}
	tasks, err := find(c.Request.Context(), principal(c), id)
	h.respondTasks(c, tasks, err)
}

func (h *Handler) ListTasksByUser(c *gin.Context) {
	h.listTasksByID(c, "userId", h.tasks.ListByUser)
}

func (h *Handler) ListTasksByProject(c *gin.Context) {
	h.listTasksByID(c, "projectId", h.tasks.ListByProject)
}

func (h *Handler) ListTasksByStatus(c *gin.Context) {
	status, err := strconv.ParseBool(c.Param("status"))
	if err != nil {
		h.respondError(c, apperror.Validation("Invalid status: "+c.Param("status")))
		return
	}
	tasks, err := h.tasks.ListByStatus(c.Request.Context(), principal(c), status)
	h.respondTasks(c, tasks, err)
}

func (h *Handler) GetTask(c *gin.Context) {
	id, good := h.idParam(c, "id")
	if !good {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, task)
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req services.CreateTaskRequest
	if !h.bind(c, &req) {
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	id, good := h.idParam(c, "id")
	if !good {
		return
	}
	var req services.UpdateTaskRequest
	if !h.bind(c, &req) {
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), principal(c), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	id, good := h.idParam(c, "id")
	if !good {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), principal(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
