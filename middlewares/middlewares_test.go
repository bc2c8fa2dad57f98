package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/utils"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func init() { gin.SetMode(gin.TestMode) }

func TestAuthMiddlewareSetsContext(t *testing.T) {
	secret := []byte("s3cret")
	tok, _, err := utils.GenerateJWT(secret, "user-1", "a@b.co", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(secret), func(c *gin.Context) {
		u := c.MustGet(CtxAuthUser).(models.AuthUser)
		c.JSON(http.StatusOK, gin.H{"id": c.GetString(CtxUserID), "email": u.Email, "token": c.GetString(CtxAccessToken) != ""})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"user-1","email":"a@b.co","token":true}`, w.Body.String())
}

func TestAuthMiddlewareMissingSecret(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthMiddleware(nil), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestViewAuthRedirects(t *testing.T) {
	r := gin.New()
	r.GET("/goals", ViewAuthMiddleware([]byte("s3cret")), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/goals", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestIPRateLimiterPerClient(t *testing.T) {
	l := NewIPRateLimiter(rate.Every(time.Hour), 2)
	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestRequestLoggerLevels(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, p := range []string{"/ok", "/bad", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}
	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Equal(t, logrus.WarnLevel, entries[1].Level)
	assert.Equal(t, logrus.ErrorLevel, entries[2].Level)
	assert.Equal(t, "/bad", entries[1].Data["path"])
}
