package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"project-tracker/internal/services"
)

func (h *Handler) ListProjects(c *gin.Context) {
	req, good := h.pageParams(c)
	if !good {
		return
	}

	page, err := h.projects.ListPage(c.Request.Context(), principal(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

func (h *Handler) ListProjectSummaries(c *gin.Context) {
	req, good := h.pageParams(c)
	if !good {
		return
	}

	page, err := h.projects.ListSummaries(c.Request.Context(), principal(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

func (h *Handler) GetProject(c *gin.Context) {
	id, good := h.idParam(c, "id")
	if !good {
		return
	}

	project, err := h.projects.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, project)
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req services.CreateProjectRequest
	if !h.bind(c, &req) {
		return
	}

	project, err := h.projects.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusCreated, project)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	id, good := h.idParam(c, "id")
	if !good {
		return
	}
	var req services.UpdateProjectRequest
	if !h.bind(c, &req) {
		return
	}

	project, err := h.projects.Update(c.Request.Context(), principal(c), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, project)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	id, good := h.idParam(c, "id")
	if !good {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), principal(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
