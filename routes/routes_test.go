package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rajivijay0509/nutrition-tracker-web/cache"
	"github.com/rajivijay0509/nutrition-tracker-web/catalog"
	"github.com/rajivijay0509/nutrition-tracker-web/controllers"
	"github.com/rajivijay0509/nutrition-tracker-web/middlewares"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories/local"
	"github.com/rajivijay0509/nutrition-tracker-web/services"
	"github.com/rajivijay0509/nutrition-tracker-web/utils"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var secret = []byte("test-secret")

func init() { gin.SetMode(gin.TestMode) }

// fakeAuthServer answers the GoTrue endpoints the login flow uses.
func fakeAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch body["email"] {
		case "ana@example.com":
			_, _ = w.Write([]byte(`{"access_token":"tok-ana","expires_in":3600,"user":{"id":"u-ana","email":"ana@example.com"}}`))
		case "new@example.com":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error_code":"email_not_confirmed","msg":"Email not confirmed"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error_code":"invalid_credentials","msg":"Invalid login credentials"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newRouter(t *testing.T, opt Options) *gin.Engine {
	t.Helper()
	log, _ := test.NewNullLogger()
	kv := cache.NewMemoryKV()
	cat := catalog.MustLoad()
	hub := services.NewRealtimeHub(log)

	ws := local.NewWellnessStore(kv)
	foods := services.NewFoodService(cat, catalog.UnitStrict, nil)
	meals := services.NewMealService(nil, local.NewMealStore(kv), foods, nil, log, hub)
	wellness := services.NewWellnessService(nil, ws, nil, ws.Symptoms(), log, hub)
	goals := services.NewGoalService(nil, local.NewGoalStore(kv), nil, log, hub)
	profiles := services.NewProfileService(nil, local.NewProfileStore(kv), wellness, nil, log, hub)
	rs := local.NewRecipeStore(kv)
	recipes := services.NewRecipeService(rs, log)
	community := services.NewCommunityService(local.NewCommunityStore(kv), rs, log)
	dashboard := services.NewDashboardService(meals, wellness, profiles, cat, services.TrendLabelsStatic)
	history := services.NewHistoryService(meals, wellness)
	auth := services.NewAuthService(services.NewSupabaseAuth(fakeAuthServer(t).URL, "anon"), profiles, hub, log)

	opt.JWTSecret = secret
	opt.Log = log
	if opt.Gatherer == nil {
		reg := prometheus.NewRegistry()
		opt.Gatherer = reg
	}
	return SetupRouter(Handlers{
		Auth:      controllers.NewAuthController(auth, false),
		Meals:     controllers.NewMealController(meals),
		Foods:     controllers.NewFoodController(foods),
		Wellness:  controllers.NewWellnessController(wellness),
		Goals:     controllers.NewGoalController(goals),
		Profile:   controllers.NewProfileController(profiles),
		Recipes:   controllers.NewRecipeController(recipes),
		Community: controllers.NewCommunityController(community),
		Dashboard: controllers.NewDashboardController(dashboard, history),
		Devices:   controllers.NewDeviceController(nil),
		Realtime:  controllers.NewRealtimeController(hub),
		Views: &controllers.ViewController{
			Dashboard: dashboard, History: history, Foods: foods, Meals: meals,
			Wellness: wellness, Goals: goals, Recipes: recipes, Community: community, Profiles: profiles,
		},
	}, opt)
}

func token(t *testing.T) string {
	t.Helper()
	tok, _, err := utils.GenerateJWT(secret, "u1", "ana@example.com", time.Hour)
	require.NoError(t, err)
	return tok
}

func do(r http.Handler, method, path, tok string, body any) *httptest.ResponseRecorder {
	var rdr *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	r := newRouter(t, Options{})
	w := do(r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedAPIRequiresToken(t *testing.T) {
	r := newRouter(t, Options{})

	w := do(r, http.MethodGet, "/api/meals", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication required", decode(t, w)["error"])

	w = do(r, http.MethodGet, "/api/meals", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedViewRedirectsToLogin(t *testing.T) {
	r := newRouter(t, Options{})
	for _, path := range []string{"/", "/dashboard", "/goals", "/profile"} {
		w := do(r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}
}

func TestUnknownPathRedirectsHome(t *testing.T) {
	r := newRouter(t, Options{})
	w := do(r, http.MethodGet, "/no/such/page", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestViewAcceptsSessionCookie(t *testing.T) {
	r := newRouter(t, Options{})
	req := httptest.NewRequest(http.MethodGet, "/goals", nil)
	req.AddCookie(&http.Cookie{Name: middlewares.SessionCookie, Value: token(t)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "goals", body["view"])
	assert.NotNil(t, body["stats"])
}

func TestLogMealThenDashboard(t *testing.T) {
	r := newRouter(t, Options{})
	tok := token(t)

	w := do(r, http.MethodPost, "/api/meals", tok, map[string]any{
		"date":         "2024-03-01",
		"mealTimeSlot": "6:00 AM",
		"foodItems": []map[string]any{
			{"foodName": "Not In Catalog", "quantity": 1, "unit": "bowl", "calories": 250},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	meal := decode(t, w)
	assert.NotEmpty(t, meal["id"])
	assert.Equal(t, float64(250), meal["calories"])

	w = do(r, http.MethodGet, "/api/meals?date=2024-03-01", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["meals"], 1)

	w = do(r, http.MethodGet, "/api/dashboard?date=2024-03-01", tok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	dash := decode(t, w)
	metrics := dash["metrics"].(map[string]any)
	assert.Equal(t, float64(250), metrics["calories"])
	assert.Equal(t, float64(850), dash["target"])
	assert.Equal(t, float64(29), dash["percentage"])
	assert.Equal(t, float64(600), dash["remaining"])
	assert.Len(t, dash["trend"], 7)
}

func TestLogMealValidationError(t *testing.T) {
	r := newRouter(t, Options{})
	w := do(r, http.MethodPost, "/api/meals", token(t), map[string]any{"date": "2024-03-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please select a food and meal time", decode(t, w)["error"])
}

func TestLogMealRejectsNegativeCalories(t *testing.T) {
	r := newRouter(t, Options{})
	w := do(r, http.MethodPost, "/api/meals", token(t), map[string]any{
		"date":         "2024-03-01",
		"mealTimeSlot": "6:00 AM",
		"foodItems":    []map[string]any{{"foodName": "Homemade soup", "quantity": 1, "unit": "bowl", "calories": -5000}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Calories cannot be negative", decode(t, w)["error"])
}

func TestFoodLoggingPageSelection(t *testing.T) {
	r := newRouter(t, Options{})
	tok := token(t)

	w := do(r, http.MethodGet, "/food-logging?date=2024-03-01", tok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decode(t, w)
	assert.Equal(t, "food-logging", page["view"])
	assert.Equal(t, "v5", page["selectedPhase"])
	assert.Equal(t, "6:00 AM", page["selectedSlot"])
	assert.Len(t, page["slots"], 9)

	w = do(r, http.MethodGet, "/food-logging?date=2024-03-01&phase=v2", tok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page = decode(t, w)
	assert.Equal(t, "v2", page["selectedPhase"])
	assert.Equal(t, "7:30 AM", page["selectedSlot"])
	assert.Len(t, page["slots"], 6)

	w = do(r, http.MethodGet, "/food-logging?date=2024-03-01&phase=v2&slot=10:00%20AM", tok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "10:00 AM", decode(t, w)["selectedSlot"])

	w = do(r, http.MethodGet, "/food-logging?phase=v2&slot=1:30%20PM", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/food-logging?phase=v9", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unknown phase v9", decode(t, w)["error"])
}

func TestFoodCostPrefillsQuantityAndUnit(t *testing.T) {
	r := newRouter(t, Options{})
	tok := token(t)

	w := do(r, http.MethodGet, "/api/foods/cost?name=apple", tok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	item := decode(t, w)
	assert.Equal(t, "Apple", item["foodName"])
	assert.Equal(t, float64(100), item["quantity"])
	assert.Equal(t, "g", item["unit"])
	assert.Equal(t, float64(52), item["calories"])

	w = do(r, http.MethodGet, "/api/foods/cost?name=Apple&quantity=250&unit=g", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(130), decode(t, w)["calories"])

	w = do(r, http.MethodGet, "/api/foods/cost?name=Apple&quantity=lots", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/foods/cost?name=Unobtainium", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGoalRequiredFields(t *testing.T) {
	r := newRouter(t, Options{})
	w := do(r, http.MethodPost, "/api/goals", token(t), map[string]any{"name": "Sleep more"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please fill in all required fields", decode(t, w)["error"])
}

func TestProfileDefaults(t *testing.T) {
	r := newRouter(t, Options{})
	w := do(r, http.MethodGet, "/api/profile", token(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decode(t, w)
	assert.Equal(t, "u1", p["userId"])
	assert.Equal(t, float64(850), p["targetCalories"])
	assert.Equal(t, float64(8), p["targetSleep"])
	assert.Equal(t, float64(30), p["targetExercise"])
}

func TestMissingRecipeIsNotFound(t *testing.T) {
	r := newRouter(t, Options{})
	w := do(r, http.MethodGet, "/api/recipes/does-not-exist", token(t), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPushNotConfigured(t *testing.T) {
	r := newRouter(t, Options{})
	w := do(r, http.MethodPost, "/api/devices", token(t), map[string]string{"platform": "ios", "token": "abc"})
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestLoginErrors(t *testing.T) {
	r := newRouter(t, Options{})

	w := do(r, http.MethodPost, "/login", "", map[string]string{"email": "bad@example.com", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decode(t, w)["error"])

	w = do(r, http.MethodPost, "/login", "", map[string]string{"email": "new@example.com", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Please check your email to confirm your account.", decode(t, w)["error"])

	w = do(r, http.MethodPost, "/login", "", map[string]string{"email": "", "password": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please fill in all fields", decode(t, w)["error"])
}

func TestLoginSetsSessionCookie(t *testing.T) {
	r := newRouter(t, Options{})
	w := do(r, http.MethodPost, "/login", "", map[string]string{"email": "ana@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "/dashboard", decode(t, w)["redirect"])
	assert.Contains(t, w.Header().Get("Set-Cookie"), middlewares.SessionCookie+"=tok-ana")
}

func TestOAuthRedirectSetsVerifier(t *testing.T) {
	r := newRouter(t, Options{})
	w := do(r, http.MethodGet, "/auth/oauth/google", "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/auth/v1/authorize?")
	assert.Contains(t, w.Header().Get("Set-Cookie"), "pkce_verifier=")
}

func TestOAuthCallbackWithoutVerifier(t *testing.T) {
	r := newRouter(t, Options{})
	w := do(r, http.MethodGet, "/auth/callback?code=abc", "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/login?error="))
}

func TestAuthRateLimit(t *testing.T) {
	r := newRouter(t, Options{AuthRate: rate.Every(time.Hour), AuthBurst: 1})
	creds := map[string]string{"email": "bad@example.com", "password": "x"}

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/login", "", creds).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/login", "", creds).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(middlewares.Collectors()...)
	r := newRouter(t, Options{Gatherer: reg})

	do(r, http.MethodGet, "/healthz", "", nil)
	w := do(r, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `nutritrack_http_requests_total{method="GET",route="/healthz",status="200"}`)
}
