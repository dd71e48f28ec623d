package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"project-tracker/internal/apperror"
	"project-tracker/internal/logger"
)

const oauthStateKey = "oauth_state"

// GoogleLogin redirects to the provider's consent page. The state value
// round-trips through the session cookie.
func (h *Handler) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()

	sess := sessions.Default(c)
	sess.Set(oauthStateKey, state)
	if err := sess.Save(); err != nil {
		h.respondError(c, apperror.Internal("could not save session", err))
		return
	}

	c.Redirect(http.StatusFound, h.google.AuthCodeURL(state))
}

func (h *Handler) GoogleCallback(c *gin.Context) {
	sess := sessions.Default(c)
	want, _ := sess.Get(oauthStateKey).(string)
	sess.Delete(oauthStateKey)
	_ = sess.Save()

	if want == "" || c.Query("state") != want {
		h.respondError(c, &apperror.Error{
			Kind:    apperror.KindInvalidCredentials,
			Code:    apperror.CodeUnauthorized,
			Message: "Invalid OAuth state",
		})
		return
	}
	if errParam := c.Query("error"); errParam != "" {
		h.respondError(c, &apperror.Error{
			Kind:    apperror.KindInvalidCredentials,
			Code:    apperror.CodeUnauthorized,
			Message: "Sign-in was cancelled: " + errParam,
		})
		return
	}

	identity, err := h.google.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.respondError(c, &apperror.Error{
			Kind:    apperror.KindInvalidCredentials,
			Code:    apperror.CodeInvalidCredentials,
			Message: "Federated sign-in failed",
			Err:     err,
		})
		return
	}

	entry := h.log.WithFields(logrus.Fields{"provider": "google", "email": logger.MaskEmail(identity.Email)})
	res, err := h.auth.FederatedLogin(c.Request.Context(), identity)
	if err != nil {
		entry.WithError(err).Warn("federated sign-in rejected")
		h.respondError(c, err)
		return
	}
	entry.WithField("user", res.Principal.Username).Info("federated sign-in")
	ok(c, http.StatusOK, res)
}
