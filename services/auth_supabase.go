package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/tidwall/gjson"
)

// SupabaseAuth talks to the hosted GoTrue REST API under <project>/auth/v1.
type SupabaseAuth struct {
	baseURL string
	anonKey string
	client  *http.Client
}

func NewSupabaseAuth(projectURL, anonKey string) *SupabaseAuth {
	return &SupabaseAuth{
		baseURL: strings.TrimRight(projectURL, "/") + "/auth/v1",
		anonKey: anonKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *SupabaseAuth) do(ctx context.Context, method, path, token string, body any) (gjson.Result, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return gjson.Result{}, err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, rdr)
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("apikey", a.anonKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return gjson.Result{}, err
	}
	if resp.StatusCode >= 400 {
		return gjson.Result{}, supabaseError(resp.StatusCode, raw)
	}
	return gjson.ParseBytes(raw), nil
}

// supabaseError maps GoTrue error bodies (old and new shapes) onto our errors.
func supabaseError(status int, raw []byte) error {
	res := gjson.ParseBytes(raw)
	code := res.Get("error_code").String()
	if code == "" {
		code = res.Get("error").String()
	}
	msg := firstNonEmpty(res.Get("msg").String(), res.Get("error_description").String(), res.Get("message").String(), http.StatusText(status))

	switch {
	case code == "invalid_credentials" || strings.EqualFold(msg, "Invalid login credentials"):
		return ErrInvalidCredentials
	case code == "email_not_confirmed" || strings.EqualFold(msg, "Email not confirmed"):
		return ErrEmailNotConfirmed
	}
	return &ProviderError{Status: status, Msg: msg}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseUser(u gjson.Result) models.AuthUser {
	user := models.AuthUser{ID: u.Get("id").String(), Email: u.Get("email").String()}
	if meta, ok := u.Get("user_metadata").Value().(map[string]any); ok {
		user.Metadata = meta
	}
	return user
}

func parseSession(res gjson.Result) models.Session {
	exp := time.Now().Add(time.Duration(res.Get("expires_in").Int()) * time.Second)
	if at := res.Get("expires_at").Int(); at > 0 {
		exp = time.Unix(at, 0)
	}
	return models.Session{
		AccessToken:  res.Get("access_token").String(),
		RefreshToken: res.Get("refresh_token").String(),
		TokenType:    firstNonEmpty(res.Get("token_type").String(), "bearer"),
		ExpiresAt:    exp,
		User:         parseUser(res.Get("user")),
	}
}

func (a *SupabaseAuth) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	res, err := a.do(ctx, http.MethodPost, "/token?grant_type=password", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return models.Session{}, err
	}
	return parseSession(res), nil
}

func (a *SupabaseAuth) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*models.Session, models.AuthUser, error) {
	res, err := a.do(ctx, http.MethodPost, "/signup", "", map[string]any{
		"email":    email,
		"password": password,
		"data":     metadata,
	})
	if err != nil {
		return nil, models.AuthUser{}, err
	}
	if !res.Get("access_token").Exists() {
		// confirmation pending: the body is the bare user
		return nil, parseUser(res), nil
	}
	sess := parseSession(res)
	return &sess, sess.User, nil
}

func (a *SupabaseAuth) OAuthURL(provider, redirectTo, codeChallenge string) (string, error) {
	q := url.Values{}
	q.Set("provider", provider)
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	q.Set("code_challenge", codeChallenge)
	q.Set("code_challenge_method", "s256")
	return a.baseURL + "/authorize?" + q.Encode(), nil
}

func (a *SupabaseAuth) ExchangeCode(ctx context.Context, code, codeVerifier string) (models.Session, error) {
	res, err := a.do(ctx, http.MethodPost, "/token?grant_type=pkce", "", map[string]string{
		"auth_code":     code,
		"code_verifier": codeVerifier,
	})
	if err != nil {
		return models.Session{}, err
	}
	return parseSession(res), nil
}

func (a *SupabaseAuth) SignOut(ctx context.Context, accessToken string) error {
	_, err := a.do(ctx, http.MethodPost, "/logout", accessToken, nil)
	return err
}

func (a *SupabaseAuth) GetUser(ctx context.Context, accessToken string) (models.AuthUser, error) {
	res, err := a.do(ctx, http.MethodGet, "/user", accessToken, nil)
	if err != nil {
		return models.AuthUser{}, err
	}
	return parseUser(res), nil
}

func (a *SupabaseAuth) UpdateUser(ctx context.Context, accessToken string, attrs UserAttributes) (models.AuthUser, error) {
	res, err := a.do(ctx, http.MethodPut, "/user", accessToken, attrs)
	if err != nil {
		return models.AuthUser{}, err
	}
	return parseUser(res), nil
}

var _ AuthProvider = (*SupabaseAuth)(nil)
