package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"project-tracker/internal/apperror"
	"project-tracker/internal/models"
)

// Authenticator resolves a bearer token to the principal it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Principal, error)
}

var errMissingToken = &apperror.Error{
	Kind:    apperror.KindInvalidCredentials,
	Code:    apperror.CodeUnauthorized,
	Message: "Missing or malformed bearer token",
}

func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMissingToken
	}
	return strings.TrimSpace(token), nil
}

func abortWithError(c *gin.Context, err error) {
	resp := apperror.Response(err, time.Now())
	_ = c.Error(err)
	c.AbortWithStatusJSON(resp.Status, resp)
}

func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			abortWithError(c, err)
			return
		}

		p, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			var appErr *apperror.Error
			if !errors.As(err, &appErr) {
				err = apperror.InvalidCredentials()
			}
			abortWithError(c, err)
			return
		}

		setPrincipal(c, p)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...models.RoleName) gin.HandlerFunc {
	roleSet := map[models.RoleName]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			abortWithError(c, errMissingToken)
			return
		}

		if _, ok := roleSet[p.Role]; !ok {
			abortWithError(c, apperror.AccessDenied("Insufficient permissions"))
			return
		}
		c.Next()
	}
}
