// Package identity implements the identity provider on top of the
// accounts table, bcrypt password hashing and JWT session tokens.
package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lezzetli/v1/internal/domain/user"
	"github.com/lezzetli/v1/internal/infrastructure/config"
	gormmodels "github.com/lezzetli/v1/internal/infrastructure/persistence/gorm"
	"github.com/lezzetli/v1/internal/ports/outbound"
	"github.com/lezzetli/v1/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	revokedKeyPrefix = "identity:revoked:"
	resetKeyPrefix   = "identity:reset:"
)

// Provider implements outbound.IdentityProvider. Sessions are stateless
// JWTs; sign-out places the token on a cache denylist until its natural
// expiry.
type Provider struct {
	db     *gorm.DB
	cache  outbound.CacheRepository
	cfg    config.IdentityConfig
	logger *zap.Logger
}

// NewProvider creates an identity provider.
func NewProvider(db *gorm.DB, cache outbound.CacheRepository, cfg config.IdentityConfig, logger *zap.Logger) outbound.IdentityProvider {
	return &Provider{
		db:     db,
		cache:  cache,
		cfg:    cfg,
		logger: logger.Named("identity-provider"),
	}
}

// CreateAccount registers credentials and returns the new uid.
func (p *Provider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := user.ValidateEmail(email); err != nil {
		return "", errors.NewValidationError("invalid email address")
	}
	if len(password) < user.MinPasswordLength {
		return "", errors.NewWeakPasswordError(user.MinPasswordLength)
	}

	var existing gormmodels.AccountModel
	err := p.db.WithContext(ctx).First(&existing, "email = ?", email).Error
	if err == nil {
		return "", errors.NewEmailAlreadyExistsError(email)
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return "", errors.NewDatabaseError("check existing account", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cfg.BCryptCost)
	if err != nil {
		return "", errors.NewInternalError("failed to hash password").WithCause(err)
	}

	account := gormmodels.AccountModel{
		UID:          uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := p.db.WithContext(ctx).Create(&account).Error; err != nil {
		return "", errors.NewDatabaseError("create account", err)
	}

	p.logger.Info("account created", zap.String("uid", account.UID))
	return account.UID, nil
}

// SignIn verifies credentials and issues a session token.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*outbound.AuthSession, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var account gormmodels.AccountModel
	if err := p.db.WithContext(ctx).First(&account, "email = ?", email).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewInvalidCredentialsError()
		}
		return nil, errors.NewDatabaseError("load account", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	expiresAt := time.Now().Add(p.cfg.JWTExpiration)
	token, err := p.issueToken(account.UID, expiresAt)
	if err != nil {
		return nil, errors.NewInternalError("failed to issue session token").WithCause(err)
	}

	return &outbound.AuthSession{
		UID:       account.UID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// SignOut denylists the token until it would have expired anyway.
func (p *Provider) SignOut(ctx context.Context, token string) error {
	claims, err := p.parseToken(token)
	if err != nil {
		return errors.NewUnauthorizedError("invalid session token")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := p.cache.Set(ctx, revokedKeyPrefix+token, []byte("1"), ttl); err != nil {
		return errors.NewExternalServiceError("session store", err)
	}
	return nil
}

// SendPasswordReset stores a single-use reset token with a TTL and logs
// the dispatch. Mail delivery is out of band; an unknown address is
// deliberately indistinguishable from a known one.
func (p *Provider) SendPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var account gormmodels.AccountModel
	if err := p.db.WithContext(ctx).First(&account, "email = ?", email).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			p.logger.Info("password reset requested for unknown email")
			return nil
		}
		return errors.NewDatabaseError("load account", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return errors.NewInternalError("failed to generate reset token").WithCause(err)
	}
	resetToken := hex.EncodeToString(buf)

	if err := p.cache.Set(ctx, resetKeyPrefix+resetToken, []byte(account.UID), p.cfg.ResetTokenTTL); err != nil {
		return errors.NewExternalServiceError("session store", err)
	}

	p.logger.Info("password reset dispatched",
		zap.String("uid", account.UID),
		zap.Duration("ttl", p.cfg.ResetTokenTTL),
	)
	return nil
}

// ResolveToken maps a bearer token to its uid, rejecting denylisted and
// expired tokens.
func (p *Provider) ResolveToken(ctx context.Context, token string) (string, error) {
	claims, err := p.parseToken(token)
	if err != nil {
		return "", errors.NewUnauthorizedError("invalid session token")
	}

	if revoked, err := p.cache.Get(ctx, revokedKeyPrefix+token); err == nil && revoked != nil {
		return "", errors.NewUnauthorizedError("session has been signed out")
	}

	return claims.Subject, nil
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

func (p *Provider) issueToken(uid string, expiresAt time.Time) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(p.cfg.JWTSecret))
}

func (p *Provider) parseToken(tokenString string) (*sessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(p.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
