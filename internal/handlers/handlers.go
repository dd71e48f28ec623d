// Package handlers exposes the services over JSON/HTTP.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"project-tracker/internal/apperror"
	"project-tracker/internal/audit"
	"project-tracker/internal/middleware"
	"project-tracker/internal/models"
	"project-tracker/internal/security"
	"project-tracker/internal/services"
)

// AuditLog is the read side of the audit recorder.
type AuditLog interface {
	Query(ctx context.Context, f audit.Filter) ([]models.AuditRecord, error)
}

type Handler struct {
	projects *services.ProjectService
	tasks    *services.TaskService
	users    *services.UserService
	roles    *services.RoleService
	auth     *services.AuthService
	audit    AuditLog
	google   security.IdentityProvider

	validate *validator.Validate
	log      logrus.FieldLogger
}

type Deps struct {
	Projects *services.ProjectService
	Tasks    *services.TaskService
	Users    *services.UserService
	Roles    *services.RoleService
	Auth     *services.AuthService
	Audit    AuditLog
	// Google is nil when federated sign-in is not configured.
	Google security.IdentityProvider
	Log    logrus.FieldLogger
}

func New(d Deps) *Handler {
	return &Handler{
		projects: d.Projects,
		tasks:    d.Tasks,
		users:    d.Users,
		roles:    d.Roles,
		auth:     d.Auth,
		audit:    d.Audit,
		google:   d.Google,
		validate: validator.New(),
		log:      d.Log,
	}
}

// GoogleEnabled reports whether the federated routes should be mounted.
func (h *Handler) GoogleEnabled() bool {
	return h.google != nil
}

func (h *Handler) respondError(c *gin.Context, err error) {
	resp := apperror.Response(err, time.Now().UTC())

	entry := h.log.WithFields(logrus.Fields{"status": resp.Status, "path": c.Request.URL.Path})
	kind, classified := apperror.KindOf(err)
	switch {
	case !classified:
		entry.WithError(err).Error("unclassified error")
	case kind == apperror.KindInternal:
		entry.WithError(err).Error("internal error")
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(resp.Status, resp)
}

// bind decodes the JSON body into dst and validates it. It writes the error
// response itself and returns false on failure.
func (h *Handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.respondError(c, &apperror.Error{
			Kind:    apperror.KindValidation,
			Code:    apperror.CodeInvalidPayload,
			Message: "Invalid JSON body",
			Err:     err,
		})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.respondError(c, apperror.Validation(formatValidationError(verrs[0])))
		} else {
			h.respondError(c, apperror.Validation("Invalid request data"))
		}
		return false
	}
	return true
}

func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("Field '%s' is required", err.Field())
	case "email":
		return fmt.Sprintf("Field '%s' must be a valid email address", err.Field())
	case "min":
		return fmt.Sprintf("Field '%s' must be at least %s in length", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("Field '%s' must not exceed %s in length", err.Field(), err.Param())
	}
	return fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", err.Field(), err.Tag())
}

func principal(c *gin.Context) models.Principal {
	p, _ := middleware.CurrentPrincipal(c)
	return p
}

func (h *Handler) idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		h.respondError(c, apperror.Validation(fmt.Sprintf("Invalid %s: %s", name, c.Param(name))))
		return 0, false
	}
	return uint(id), true
}

// pageParams reads ?page= (one-based) and ?size=.
func (h *Handler) pageParams(c *gin.Context) (services.PageRequest, bool) {
	req := services.PageRequest{Page: 1, Size: services.DefaultPageSize}
	for key, dst := range map[string]*int{"page": &req.Page, "size": &req.Size} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(c, apperror.Validation(fmt.Sprintf("Invalid %s: %s", key, raw)))
			return services.PageRequest{}, false
		}
		*dst = n
	}
	return req, true
}

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
