package controllers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajivijay0509/nutrition-tracker-web/middlewares"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/services"
)

const (
	pkceCookie    = "pkce_verifier"
	pkceCookieTTL = 10 * time.Minute
)

type AuthController struct {
	Auth          *services.AuthService
	SecureCookies bool
}

func NewAuthController(auth *services.AuthService, secureCookies bool) *AuthController {
	return &AuthController{Auth: auth, SecureCookies: secureCookies}
}

type LoginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type ConfirmInput struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (ac *AuthController) setSession(c *gin.Context, sess models.Session) {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = int(time.Hour.Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.SessionCookie, sess.AccessToken, maxAge, "/", "", ac.SecureCookies, true)
}

func (ac *AuthController) clearSession(c *gin.Context) {
	c.SetCookie(middlewares.SessionCookie, "", -1, "/", "", ac.SecureCookies, true)
}

// GET /login
func (ac *AuthController) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"view": "login", "providers": []string{"google"}})
}

// GET /register
func (ac *AuthController) RegisterPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"view": "register", "genders": []string{"male", "female", "other"}})
}

// POST /login
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	sess, err := ac.Auth.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	ac.setSession(c, sess)
	c.JSON(http.StatusOK, gin.H{"session": sess, "redirect": "/dashboard"})
}

// POST /register
func (ac *AuthController) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	res, err := ac.Auth.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	if res.ConfirmationRequired {
		c.JSON(http.StatusAccepted, gin.H{
			"message":              "Please check your email to confirm your account.",
			"user":                 res.User,
			"confirmationRequired": true,
		})
		return
	}
	ac.setSession(c, *res.Session)
	c.JSON(http.StatusCreated, gin.H{"session": res.Session, "redirect": "/dashboard"})
}

// POST /auth/confirm
func (ac *AuthController) Confirm(c *gin.Context) {
	var input ConfirmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	sess, err := ac.Auth.ConfirmEmail(c.Request.Context(), input.Email, input.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	ac.setSession(c, sess)
	c.JSON(http.StatusOK, gin.H{"session": sess, "redirect": "/dashboard"})
}

func callbackURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + "/auth/callback"
}

// GET /auth/oauth/:provider
func (ac *AuthController) OAuth(c *gin.Context) {
	target, verifier, err := ac.Auth.OAuthURL(c.Param("provider"), callbackURL(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(pkceCookie, verifier, int(pkceCookieTTL.Seconds()), "/auth", "", ac.SecureCookies, true)
	c.Redirect(http.StatusFound, target)
}

// GET /auth/callback?code=...
func (ac *AuthController) Callback(c *gin.Context) {
	verifier, _ := c.Cookie(pkceCookie)
	c.SetCookie(pkceCookie, "", -1, "/auth", "", ac.SecureCookies, true)

	if msg := c.Query("error_description"); msg != "" {
		c.Redirect(http.StatusFound, "/login?error="+url.QueryEscape(msg))
		return
	}
	sess, err := ac.Auth.CompleteOAuth(c.Request.Context(), c.Query("code"), verifier)
	if err != nil {
		_ = c.Error(err)
		c.Redirect(http.StatusFound, "/login?error="+url.QueryEscape("Sign-in failed, please try again"))
		return
	}
	ac.setSession(c, sess)
	c.Redirect(http.StatusFound, "/dashboard")
}

// GET /api/session
func (ac *AuthController) Session(c *gin.Context) {
	u, err := ac.Auth.CurrentUser(c.Request.Context(), c.GetString(middlewares.CtxAccessToken))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// PUT /api/session/metadata
func (ac *AuthController) UpdateMetadata(c *gin.Context) {
	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	u, err := ac.Auth.UpdateMetadata(c.Request.Context(), c.GetString(middlewares.CtxAccessToken), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// POST /api/logout
func (ac *AuthController) Logout(c *gin.Context) {
	uid, _ := userIDFromCtx(c)
	_ = ac.Auth.SignOut(c.Request.Context(), c.GetString(middlewares.CtxAccessToken), uid)
	ac.clearSession(c)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out", "redirect": "/login"})
}

// POST /api/profile/password
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var input services.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	err := ac.Auth.ChangePassword(c.Request.Context(),
		c.GetString(middlewares.CtxAccessToken), c.GetString(middlewares.CtxEmail), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
