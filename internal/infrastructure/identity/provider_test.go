package identity

import (
	"context"
	"testing"
	"time"

	"github.com/lezzetli/v1/internal/infrastructure/config"
	gormmodels "github.com/lezzetli/v1/internal/infrastructure/persistence/gorm"
	"github.com/lezzetli/v1/internal/infrastructure/persistence/memory"
	"github.com/lezzetli/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type ProviderTestSuite struct {
	suite.Suite
	provider *Provider
	ctx      context.Context
}

func (s *ProviderTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(s.T(), err)
	require.NoError(s.T(), db.AutoMigrate(&gormmodels.AccountModel{}))

	cfg := config.IdentityConfig{
		JWTSecret:     "test-secret-key-for-testing-only-32-bytes",
		JWTExpiration: time.Hour,
		BCryptCost:    4, // lower cost keeps tests fast
		ResetTokenTTL: time.Hour,
	}
	s.provider = NewProvider(db, memory.NewCacheRepository(), cfg, zap.NewNop()).(*Provider)
	s.ctx = context.Background()
}

func (s *ProviderTestSuite) TestCreateAccountAndSignIn() {
	uid, err := s.provider.CreateAccount(s.ctx, "Ayse@Example.com", "sifre123")
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), uid)

	session, err := s.provider.SignIn(s.ctx, "ayse@example.com", "sifre123")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uid, session.UID)
	assert.NotEmpty(s.T(), session.Token)
	assert.True(s.T(), session.ExpiresAt.After(time.Now()))
}

func (s *ProviderTestSuite) TestCreateAccountRejectsWeakPassword() {
	_, err := s.provider.CreateAccount(s.ctx, "ayse@example.com", "12345")
	assert.True(s.T(), errors.Is(err, errors.CodeWeakPassword))
}

func (s *ProviderTestSuite) TestCreateAccountRejectsDuplicateEmail() {
	_, err := s.provider.CreateAccount(s.ctx, "ayse@example.com", "sifre123")
	require.NoError(s.T(), err)

	_, err = s.provider.CreateAccount(s.ctx, "ayse@example.com", "baska123")
	assert.True(s.T(), errors.Is(err, errors.CodeEmailAlreadyExists))
}

func (s *ProviderTestSuite) TestSignInWrongPassword() {
	_, err := s.provider.CreateAccount(s.ctx, "ayse@example.com", "sifre123")
	require.NoError(s.T(), err)

	_, err = s.provider.SignIn(s.ctx, "ayse@example.com", "yanlis")
	assert.True(s.T(), errors.Is(err, errors.CodeInvalidCredentials))

	_, err = s.provider.SignIn(s.ctx, "yok@example.com", "sifre123")
	assert.True(s.T(), errors.Is(err, errors.CodeInvalidCredentials))
}

func (s *ProviderTestSuite) TestResolveToken() {
	uid, err := s.provider.CreateAccount(s.ctx, "ayse@example.com", "sifre123")
	require.NoError(s.T(), err)

	session, err := s.provider.SignIn(s.ctx, "ayse@example.com", "sifre123")
	require.NoError(s.T(), err)

	resolved, err := s.provider.ResolveToken(s.ctx, session.Token)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uid, resolved)

	_, err = s.provider.ResolveToken(s.ctx, "not-a-token")
	assert.True(s.T(), errors.Is(err, errors.CodeUnauthorized))
}

func (s *ProviderTestSuite) TestSignOutDenylistsToken() {
	_, err := s.provider.CreateAccount(s.ctx, "ayse@example.com", "sifre123")
	require.NoError(s.T(), err)

	session, err := s.provider.SignIn(s.ctx, "ayse@example.com", "sifre123")
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.provider.SignOut(s.ctx, session.Token))

	_, err = s.provider.ResolveToken(s.ctx, session.Token)
	assert.True(s.T(), errors.Is(err, errors.CodeUnauthorized))
}

func (s *ProviderTestSuite) TestSendPasswordResetUnknownEmailIsSilent() {
	assert.NoError(s.T(), s.provider.SendPasswordReset(s.ctx, "yok@example.com"))
}

func TestProviderTestSuite(t *testing.T) {
	suite.Run(t, new(ProviderTestSuite))
}
