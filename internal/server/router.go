package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"project-tracker/internal/apperror"
	"project-tracker/internal/config"
	"project-tracker/internal/handlers"
	"project-tracker/internal/middleware"
	"project-tracker/internal/models"
)

func recovery(log logrus.FieldLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithField("path", c.Request.URL.Path).Errorf("panic: %v", recovered)
		resp := apperror.Response(apperror.Internal("panic", fmt.Errorf("%v", recovered)), time.Now().UTC())
		c.AbortWithStatusJSON(resp.Status, resp)
	})
}

func NewRouter(cfg *config.Config, h *handlers.Handler, authn middleware.Authenticator, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(log), recovery(log))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 600, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("tracker_session", store))

	r.GET("/health", handlers.Health)

	api := r.Group("/api/v1")

	// AUTH
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	if h.GoogleEnabled() {
		api.GET("/oauth2/google/login", h.GoogleLogin)
		api.GET("/login/oauth2/code/google", h.GoogleCallback)
	}

	auth := api.Group("/")
	auth.Use(middleware.RequireAuth(authn))

	// PROJECTS
	auth.GET("/projects", h.ListProjects)
	auth.GET("/projects/summaries", h.ListProjectSummaries)
	auth.GET("/projects/:id", h.GetProject)
	auth.POST("/projects",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		h.CreateProject,
	)
	auth.PATCH("/projects/:id",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		h.UpdateProject,
	)
	auth.DELETE("/projects/:id",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		h.DeleteProject,
	)

	// TASKS
	auth.GET("/tasks", h.ListTasks)
	auth.GET("/tasks/overdue", h.ListOverdueTasks)
	auth.GET("/tasks/user/:userId", h.ListTasksByUser)
	auth.GET("/tasks/project/:projectId", h.ListTasksByProject)
	auth.GET("/tasks/status/:status", h.ListTasksByStatus)
	auth.GET("/tasks/:id", h.GetTask)
	auth.POST("/tasks", h.CreateTask)
	// ownership is decided per task by the service
	auth.PATCH("/tasks/:id", h.UpdateTask)
	auth.DELETE("/tasks/:id", h.DeleteTask)

	// USERS: admin only
	admin := auth.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.GET("/users", h.ListUsers)
	admin.GET("/users/username/:username", h.GetUserByUsername)
	admin.GET("/users/:id", h.GetUser)
	admin.POST("/users", h.CreateUser)
	admin.PATCH("/users/:id", h.UpdateUser)
	admin.DELETE("/users/:id", h.DeleteUser)

	// ROLES
	auth.GET("/roles", h.ListRoles)
	auth.GET("/roles/name/:name", h.GetRoleByName)
	auth.GET("/roles/:id", h.GetRole)
	auth.POST("/roles", h.CreateRole)
	auth.PATCH("/roles/:id", h.UpdateRole)
	auth.DELETE("/roles/:id", h.DeleteRole)

	// AUDIT
	auth.GET("/logs", h.ListAuditLogs)

	return r
}

// WithCORS wraps the router for browser clients on the configured origins.
func WithCORS(cfg *config.Config, next http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(next)
}
