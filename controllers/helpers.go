package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajivijay0509/nutrition-tracker-web/middlewares"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"github.com/rajivijay0509/nutrition-tracker-web/services"
)

const dateLayout = "2006-01-02"

func userIDFromCtx(c *gin.Context) (string, bool) {
	uid := c.GetString(middlewares.CtxUserID)
	return uid, uid != ""
}

func authUserFromCtx(c *gin.Context) models.AuthUser {
	if v, ok := c.Get(middlewares.CtxAuthUser); ok {
		if u, ok := v.(models.AuthUser); ok {
			return u
		}
	}
	return models.AuthUser{ID: c.GetString(middlewares.CtxUserID), Email: c.GetString(middlewares.CtxEmail)}
}

func today() string { return time.Now().Format(dateLayout) }

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var pe *services.ProviderError
	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, services.ErrEmailNotConfirmed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Please check your email to confirm your account."})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrBMIUnavailable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPhotosDisabled),
		errors.Is(err, services.ErrRecognitionDisabled),
		errors.Is(err, services.ErrProviderUnsupported):
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	case errors.As(err, &pe):
		status := pe.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": pe.Msg})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again"})
	}
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// displayName is how the user appears on recipes, ratings and comments.
func displayName(u models.AuthUser) string {
	name := strings.TrimSpace(u.MetadataString("first_name") + " " + u.MetadataString("last_name"))
	if name != "" {
		return name
	}
	if at := strings.IndexByte(u.Email, '@'); at > 0 {
		return u.Email[:at]
	}
	return "Anonymous"
}
