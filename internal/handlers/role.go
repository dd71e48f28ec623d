package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"project-tracker/internal/services"
)

func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.roles.List(c.Request.Context(), principal(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, roles)
}

func (h *Handler) GetRole(c *gin.Context) {
	id, good := h.idParam(c, "id")
	if !good {
		return
	}

	role, err := h.roles.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, role)
}

func (h *Handler) GetRoleByName(c *gin.Context) {
	role, err := h.roles.GetByName(c.Request.Context(), principal(c), c.Param("name"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, role)
}

func (h *Handler) CreateRole(c *gin.Context) {
	var req services.RoleRequest
	if !h.bind(c, &req) {
		return
	}

	role, err := h.roles.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusCreated, role)
}

func (h *Handler) UpdateRole(c *gin.Context) {
	id, good := h.idParam(c, "id")
	if !good {
		return
	}
	var req services.RoleRequest
	if !h.bind(c, &req) {
		return
	}

	role, err := h.roles.Update(c.Request.Context(), principal(c), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, role)
}

func (h *Handler) DeleteRole(c *gin.Context) {
	id, good := h.idParam(c, "id")
	if !good {
		return
	}

	if err := h.roles.Delete(c.Request.Context(), principal(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
