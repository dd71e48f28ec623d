package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"project-tracker/internal/services"
)

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), principal(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, good := h.idParam(c, "id")
	if !good {
		return
	}

	user, err := h.users.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, user)
}

func (h *Handler) GetUserByUsername(c *gin.Context) {
	user, err := h.users.GetByUsername(c.Request.Context(), principal(c), c.Param("username"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, user)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if !h.bind(c, &req) {
		return
	}

	user, err := h.users.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusCreated, user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, good := h.idParam(c, "id")
	if !good {
		return
	}
	var req services.UpdateUserRequest
	if !h.bind(c, &req) {
		return
	}

	user, err := h.users.Update(c.Request.Context(), principal(c), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, good := h.idParam(c, "id")
	if !good {
		return
	}

	if err := h.users.Delete(c.Request.Context(), principal(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
