package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rajivijay0509/nutrition-tracker-web/cache"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories/local"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func fakeGoTrue(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch body["email"] {
		case "ok@example.com":
			_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600,"refresh_token":"ref",
				"user":{"id":"u-1","email":"ok@example.com","user_metadata":{"first_name":"Ana"}}}`))
		case "unconfirmed@example.com":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":400,"error_code":"email_not_confirmed","msg":"Email not confirmed"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
		}
	})
	mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] == "taken@example.com" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"code":422,"error_code":"user_already_exists","msg":"User already registered"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"u-2","email":"new@example.com","user_metadata":{"first_name":"Bo"}}`))
	})
	mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"u-1","email":"ok@example.com"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newAuthService(t *testing.T, provider AuthProvider) (*AuthService, *recordingEvents) {
	log, _ := test.NewNullLogger()
	ws := local.NewWellnessStore(cache.NewMemoryKV())
	wellness := NewWellnessService(nil, ws, nil, ws.Symptoms(), log, nil)
	profiles := NewProfileService(nil, local.NewProfileStore(cache.NewMemoryKV()), wellness, nil, log, nil)
	events := &recordingEvents{}
	return NewAuthService(provider, profiles, events, log), events
}

func TestSupabaseSignIn(t *testing.T) {
	srv := fakeGoTrue(t)
	svc, events := newAuthService(t, NewSupabaseAuth(srv.URL, "anon"))
	ctx := context.Background()

	sess, err := svc.SignIn(ctx, "ok@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.AccessToken)
	assert.Equal(t, "u-1", sess.User.ID)
	assert.Equal(t, "Ana", sess.User.MetadataString("first_name"))
	assert.Equal(t, []string{"auth.signed_in"}, events.kinds())

	_, err = svc.SignIn(ctx, "bad@example.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.SignIn(ctx, "unconfirmed@example.com", "secret123")
	assert.ErrorIs(t, err, ErrEmailNotConfirmed)
	_, err = svc.SignIn(ctx, "", "")
	assert.True(t, IsValidation(err))
}

func TestSupabaseRegisterNeedsConfirmation(t *testing.T) {
	srv := fakeGoTrue(t)
	svc, _ := newAuthService(t, NewSupabaseAuth(srv.URL, "anon"))

	in := RegisterInput{
		FirstName: "Bo", LastName: "Li", Email: "new@example.com",
		Password: "password1", ConfirmPassword: "password1",
		HeightCm: 170, Gender: "female", AgreeToTerms: true,
	}
	res, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, res.ConfirmationRequired)
	assert.Nil(t, res.Session)
	assert.Equal(t, "u-2", res.User.ID)

	in.Email = "taken@example.com"
	_, err = svc.Register(context.Background(), in)
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "User already registered", pe.Msg)
}

func TestSupabaseCurrentUser(t *testing.T) {
	srv := fakeGoTrue(t)
	svc, _ := newAuthService(t, NewSupabaseAuth(srv.URL, "anon"))

	u, err := svc.CurrentUser(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)

	_, err = svc.CurrentUser(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegisterValidationOrder(t *testing.T) {
	svc, _ := newAuthService(t, NewSupabaseAuth("http://127.0.0.1:0", "anon"))
	valid := RegisterInput{
		FirstName: "Bo", LastName: "Li", Email: "bo@example.com",
		Password: "password1", ConfirmPassword: "password1",
		HeightCm: 170, Gender: "male", AgreeToTerms: true,
	}
	cases := []struct {
		mutate func(*RegisterInput)
		msg    string
	}{
		{func(in *RegisterInput) { in.LastName = "" }, "Please enter your name"},
		{func(in *RegisterInput) { in.Email = "" }, "Please enter your email"},
		{func(in *RegisterInput) { in.ConfirmPassword = "" }, "Please enter a password"},
		{func(in *RegisterInput) { in.Password, in.ConfirmPassword = "short", "short" }, "Password must be at least 8 characters"},
		{func(in *RegisterInput) { in.ConfirmPassword = "password2" }, "Passwords do not match"},
		{func(in *RegisterInput) { in.HeightCm = 0 }, "Please enter your height"},
		{func(in *RegisterInput) { in.Gender = "" }, "Please select your gender"},
		{func(in *RegisterInput) { in.AgreeToTerms = false }, "Please agree to terms and privacy policy"},
	}
	for _, tc := range cases {
		in := valid
		tc.mutate(&in)
		_, err := svc.Register(context.Background(), in)
		require.True(t, IsValidation(err), tc.msg)
		assert.Equal(t, tc.msg, err.Error())
	}
}

func TestChangePasswordValidation(t *testing.T) {
	svc, _ := newAuthService(t, NewSupabaseAuth("http://127.0.0.1:0", "anon"))
	ctx := context.Background()

	err := svc.ChangePassword(ctx, "tok", "a@b.co", ChangePasswordInput{Current: "x", New: "abcdefgh"})
	assert.EqualError(t, err, "All password fields are required")
	err = svc.ChangePassword(ctx, "tok", "a@b.co", ChangePasswordInput{Current: "x", New: "abcdefgh", Confirm: "abcdefgi"})
	assert.EqualError(t, err, "New passwords do not match")
	err = svc.ChangePassword(ctx, "tok", "a@b.co", ChangePasswordInput{Current: "x", New: "short", Confirm: "short"})
	assert.EqualError(t, err, "Password must be at least 8 characters")
}

func TestOAuthURLCarriesPKCEChallenge(t *testing.T) {
	svc, _ := newAuthService(t, NewSupabaseAuth("https://proj.supabase.co", "anon"))
	raw, verifier, err := svc.OAuthURL("google", "http://localhost:8080/auth/callback")
	require.NoError(t, err)
	assert.NotEmpty(t, verifier)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/auth/v1/authorize", u.Path)
	assert.Equal(t, "google", u.Query().Get("provider"))
	assert.Equal(t, "s256", u.Query().Get("code_challenge_method"))
	assert.NotEmpty(t, u.Query().Get("code_challenge"))
}

func TestLocalAuthUnknownEmail(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "uid", "email", "password"}))

	log, _ := test.NewNullLogger()
	auth := NewLocalAuth(db, []byte("secret"), nil, log)
	_, err = auth.SignIn(context.Background(), "nobody@example.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.NoError(t, mock.ExpectationsWereMet())

	_, err = auth.OAuthURL("google", "", "")
	assert.ErrorIs(t, err, ErrProviderUnsupported)
}
