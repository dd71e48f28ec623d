package middleware

import (
	"github.com/gin-gonic/gin"

	"project-tracker/internal/models"
)

const principalKey = "principal"

func setPrincipal(c *gin.Context, p models.Principal) {
	c.Set(principalKey, p)
}

// CurrentPrincipal returns the principal RequireAuth stored on the request.
func CurrentPrincipal(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}
