package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/sirupsen/logrus"
)

// UserAttributes are the fields an auth provider can change on the signed-in user.
type UserAttributes struct {
	Password string         `json:"password,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// AuthProvider is the identity backend. SignUp returns a nil session when the
// account must confirm its email first.
type AuthProvider interface {
	SignIn(ctx context.Context, email, password string) (models.Session, error)
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*models.Session, models.AuthUser, error)
	OAuthURL(provider, redirectTo, codeChallenge string) (string, error)
	ExchangeCode(ctx context.Context, code, codeVerifier string) (models.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (models.AuthUser, error)
	UpdateUser(ctx context.Context, accessToken string, attrs UserAttributes) (models.AuthUser, error)
}

// EmailConfirmer is implemented by providers that confirm accounts with a code.
type EmailConfirmer interface {
	ConfirmEmail(ctx context.Context, email, code string) (models.Session, error)
}

// ProviderError is a rejection reported by the auth provider, safe to show to the user.
type ProviderError struct {
	Status int
	Msg    string
}

func (e *ProviderError) Error() string { return e.Msg }

type RegisterInput struct {
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirmPassword"`
	HeightCm        float64 `json:"heightCm"`
	Gender          string  `json:"gender"`
	AgreeToTerms    bool    `json:"agreeToTerms"`
}

type RegisterResult struct {
	Session              *models.Session `json:"session,omitempty"`
	User                 models.AuthUser `json:"user"`
	ConfirmationRequired bool            `json:"confirmationRequired"`
}

type ChangePasswordInput struct {
	Current string `json:"current"`
	New     string `json:"new"`
	Confirm string `json:"confirm"`
}

const minPasswordLength = 8

type AuthService struct {
	provider AuthProvider
	profiles *ProfileService
	events   EventPublisher
	log      *logrus.Logger
}

func NewAuthService(provider AuthProvider, profiles *ProfileService, events EventPublisher, log *logrus.Logger) *AuthService {
	return &AuthService{provider: provider, profiles: profiles, events: events, log: log}
}

func (s *AuthService) publish(userID, kind string) {
	if s.events != nil && userID != "" {
		s.events.Publish(userID, models.Event{Kind: kind, CreatedAt: time.Now()})
	}
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.Session{}, invalid("Please fill in all fields")
	}
	sess, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return models.Session{}, err
	}
	s.log.WithField("user_id", sess.User.ID).Info("user signed in")
	s.publish(sess.User.ID, "auth.signed_in")
	return sess, nil
}

func validateRegistration(in RegisterInput) error {
	switch {
	case strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "":
		return invalid("Please enter your name")
	case strings.TrimSpace(in.Email) == "":
		return invalid("Please enter your email")
	case in.Password == "" || in.ConfirmPassword == "":
		return invalid("Please enter a password")
	case len(in.Password) < minPasswordLength:
		return invalid("Password must be at least 8 characters")
	case in.Password != in.ConfirmPassword:
		return invalid("Passwords do not match")
	case in.HeightCm <= 0:
		return invalid("Please enter your height")
	case in.Gender == "":
		return invalid("Please select your gender")
	case !in.AgreeToTerms:
		return invalid("Please agree to terms and privacy policy")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return invalid("Please enter a valid email")
	}
	return nil
}

// Register signs the user up and, when a session is issued right away, creates
// the profile. A failed profile write does not fail the registration.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	if err := validateRegistration(in); err != nil {
		return RegisterResult{}, err
	}
	in.Email = strings.TrimSpace(in.Email)
	meta := map[string]any{
		"first_name": strings.TrimSpace(in.FirstName),
		"last_name":  strings.TrimSpace(in.LastName),
	}
	sess, user, err := s.provider.SignUp(ctx, in.Email, in.Password, meta)
	if err != nil {
		return RegisterResult{}, err
	}
	if sess == nil {
		s.log.WithField("user_id", user.ID).Info("registration awaiting email confirmation")
		return RegisterResult{User: user, ConfirmationRequired: true}, nil
	}

	height := in.HeightCm
	_, perr := s.profiles.UpdateProfile(ctx, sess.User, models.Profile{
		FirstName: meta["first_name"].(string),
		LastName:  meta["last_name"].(string),
		Height:    &height,
		Gender:    in.Gender,
	})
	if perr != nil {
		s.log.WithError(perr).WithField("user_id", sess.User.ID).Error("profile creation failed")
	}
	s.publish(sess.User.ID, "auth.signed_in")
	return RegisterResult{Session: sess, User: sess.User}, nil
}

func (s *AuthService) ConfirmEmail(ctx context.Context, email, code string) (models.Session, error) {
	c, ok := s.provider.(EmailConfirmer)
	if !ok {
		return models.Session{}, ErrProviderUnsupported
	}
	if strings.TrimSpace(email) == "" || strings.TrimSpace(code) == "" {
		return models.Session{}, invalid("Email and confirmation code are required")
	}
	sess, err := c.ConfirmEmail(ctx, strings.TrimSpace(email), strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return models.Session{}, err
	}
	s.publish(sess.User.ID, "auth.signed_in")
	return sess, nil
}

// OAuthURL returns the provider redirect and the PKCE verifier the callback must present.
func (s *AuthService) OAuthURL(provider, redirectTo string) (string, string, error) {
	if strings.TrimSpace(provider) == "" {
		return "", "", invalid("Provider is required")
	}
	verifier, challenge, err := newPKCE()
	if err != nil {
		return "", "", err
	}
	url, err := s.provider.OAuthURL(provider, redirectTo, challenge)
	if err != nil {
		return "", "", err
	}
	return url, verifier, nil
}

func (s *AuthService) CompleteOAuth(ctx context.Context, code, verifier string) (models.Session, error) {
	if code == "" || verifier == "" {
		return models.Session{}, invalid("Missing authorization code")
	}
	sess, err := s.provider.ExchangeCode(ctx, code, verifier)
	if err != nil {
		return models.Session{}, err
	}
	s.publish(sess.User.ID, "auth.signed_in")
	return sess, nil
}

func (s *AuthService) SignOut(ctx context.Context, accessToken, userID string) error {
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("provider sign-out failed")
	}
	s.publish(userID, "auth.signed_out")
	return nil
}

// CurrentUser resolves the session's user from its access token.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (models.AuthUser, error) {
	u, err := s.provider.GetUser(ctx, accessToken)
	if err != nil {
		var pe *ProviderError
		if errors.As(err, &pe) && (pe.Status == 401 || pe.Status == 403) {
			return models.AuthUser{}, ErrUnauthorized
		}
		return models.AuthUser{}, err
	}
	return u, nil
}

func (s *AuthService) UpdateMetadata(ctx context.Context, accessToken string, data map[string]any) (models.AuthUser, error) {
	if len(data) == 0 {
		return models.AuthUser{}, invalid("Nothing to update")
	}
	return s.provider.UpdateUser(ctx, accessToken, UserAttributes{Data: data})
}

// ChangePassword re-checks the current password before setting the new one.
func (s *AuthService) ChangePassword(ctx context.Context, accessToken, email string, in ChangePasswordInput) error {
	switch {
	case in.Current == "" || in.New == "" || in.Confirm == "":
		return invalid("All password fields are required")
	case in.New != in.Confirm:
		return invalid("New passwords do not match")
	case len(in.New) < minPasswordLength:
		return invalid("Password must be at least 8 characters")
	}
	if _, err := s.provider.SignIn(ctx, email, in.Current); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return invalid("Current password is incorrect")
		}
		return err
	}
	_, err := s.provider.UpdateUser(ctx, accessToken, UserAttributes{Password: in.New})
	return err
}
