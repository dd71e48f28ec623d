package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"project-tracker/internal/services"
)

func (h *Handler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !h.bind(c, &req) {
		return
	}

	res, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusCreated, res)
}

func (h *Handler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !h.bind(c, &req) {
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}
