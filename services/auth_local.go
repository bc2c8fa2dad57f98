package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	localTokenTTL       = 24 * time.Hour
	confirmationCodeLen = 6
)

// LocalAuth keeps accounts in the users table and issues its own HS256 tokens.
// Without a mailer new accounts are confirmed immediately.
type LocalAuth struct {
	db     *gorm.DB
	secret []byte
	mailer utils.Mailer
	log    *logrus.Logger
}

func NewLocalAuth(db *gorm.DB, secret []byte, mailer utils.Mailer, log *logrus.Logger) *LocalAuth {
	return &LocalAuth{db: db, secret: secret, mailer: mailer, log: log}
}

func authUser(u models.User) models.AuthUser {
	return models.AuthUser{
		ID:    u.UID,
		Email: u.Email,
		Metadata: map[string]any{
			"first_name": u.FirstName,
			"last_name":  u.LastName,
		},
	}
}

func (a *LocalAuth) session(u models.User) (models.Session, error) {
	token, exp, err := utils.GenerateJWT(a.secret, u.UID, u.Email, localTokenTTL)
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{AccessToken: token, TokenType: "bearer", ExpiresAt: exp, User: authUser(u)}, nil
}

func (a *LocalAuth) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	var user models.User
	if err := a.db.WithContext(ctx).Where("email = ? AND disabled = ?", email, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Session{}, ErrInvalidCredentials
		}
		return models.Session{}, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return models.Session{}, ErrInvalidCredentials
	}
	if !user.Confirmed {
		return models.Session{}, ErrEmailNotConfirmed
	}
	return a.session(user)
}

func (a *LocalAuth) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*models.Session, models.AuthUser, error) {
	var count int64
	if err := a.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, models.AuthUser{}, err
	}
	if count > 0 {
		return nil, models.AuthUser{}, &ProviderError{Status: http.StatusConflict, Msg: "User already registered"}
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, models.AuthUser{}, err
	}
	first, _ := metadata["first_name"].(string)
	last, _ := metadata["last_name"].(string)
	user := models.User{
		UID:       uuid.NewString(),
		Email:     email,
		Password:  hashed,
		FirstName: first,
		LastName:  last,
		Confirmed: a.mailer == nil,
	}
	if !user.Confirmed {
		user.ConfirmationCode = utils.GenerateRandomToken(confirmationCodeLen)
	}
	if err := a.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, models.AuthUser{}, err
	}

	if !user.Confirmed {
		if err := a.mailer.SendConfirmationEmail(ctx, user.Email, user.ConfirmationCode); err != nil {
			a.log.WithError(err).WithField("user_id", user.UID).Error("confirmation email failed")
		}
		return nil, authUser(user), nil
	}
	sess, err := a.session(user)
	if err != nil {
		return nil, models.AuthUser{}, err
	}
	return &sess, sess.User, nil
}

func (a *LocalAuth) ConfirmEmail(ctx context.Context, email, code string) (models.Session, error) {
	var user models.User
	if err := a.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Session{}, invalid("Invalid confirmation code")
		}
		return models.Session{}, err
	}
	if !user.Confirmed {
		if user.ConfirmationCode == "" || user.ConfirmationCode != code {
			return models.Session{}, invalid("Invalid confirmation code")
		}
		if err := a.db.WithContext(ctx).Model(&user).Updates(map[string]any{
			"confirmed":         true,
			"confirmation_code": "",
		}).Error; err != nil {
			return models.Session{}, err
		}
		user.Confirmed = true
	}
	return a.session(user)
}

func (a *LocalAuth) OAuthURL(string, string, string) (string, error) {
	return "", ErrProviderUnsupported
}

func (a *LocalAuth) ExchangeCode(context.Context, string, string) (models.Session, error) {
	return models.Session{}, ErrProviderUnsupported
}

// SignOut is a no-op; local tokens simply expire.
func (a *LocalAuth) SignOut(context.Context, string) error { return nil }

func (a *LocalAuth) userFromToken(ctx context.Context, accessToken string) (models.User, error) {
	claims, err := utils.ParseJWT(a.secret, accessToken)
	if err != nil {
		return models.User{}, &ProviderError{Status: http.StatusUnauthorized, Msg: "invalid token"}
	}
	var user models.User
	if err := a.db.WithContext(ctx).Where("uid = ? AND disabled = ?", claims.UserID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, &ProviderError{Status: http.StatusUnauthorized, Msg: "user not found"}
		}
		return models.User{}, err
	}
	return user, nil
}

func (a *LocalAuth) GetUser(ctx context.Context, accessToken string) (models.AuthUser, error) {
	user, err := a.userFromToken(ctx, accessToken)
	if err != nil {
		return models.AuthUser{}, err
	}
	return authUser(user), nil
}

func (a *LocalAuth) UpdateUser(ctx context.Context, accessToken string, attrs UserAttributes) (models.AuthUser, error) {
	user, err := a.userFromToken(ctx, accessToken)
	if err != nil {
		return models.AuthUser{}, err
	}
	updates := map[string]any{}
	if attrs.Password != "" {
		hashed, err := utils.HashPassword(attrs.Password)
		if err != nil {
			return models.AuthUser{}, err
		}
		updates["password"] = hashed
	}
	if v, ok := attrs.Data["first_name"].(string); ok {
		updates["first_name"] = v
		user.FirstName = v
	}
	if v, ok := attrs.Data["last_name"].(string); ok {
		updates["last_name"] = v
		user.LastName = v
	}
	if len(updates) > 0 {
		if err := a.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
			return models.AuthUser{}, err
		}
	}
	return authUser(user), nil
}

var (
	_ AuthProvider   = (*LocalAuth)(nil)
	_ EmailConfirmer = (*LocalAuth)(nil)
)
