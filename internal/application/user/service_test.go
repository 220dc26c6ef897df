package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lezzetli/v1/internal/domain/recipe"
	"github.com/lezzetli/v1/internal/domain/user"
	"github.com/lezzetli/v1/internal/infrastructure/persistence/memory"
	"github.com/lezzetli/v1/internal/ports/inbound"
	"github.com/lezzetli/v1/internal/ports/outbound"
	"github.com/lezzetli/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeIdentity issues predictable uids and accepts any credentials it
// has seen at CreateAccount time.
type fakeIdentity struct {
	accounts map[string]string // email -> uid
	next     int
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{accounts: make(map[string]string)}
}

func (f *fakeIdentity) CreateAccount(ctx context.Context, email, password string) (string, error) {
	f.next++
	uid := fmt.Sprintf("uid-%d", f.next)
	f.accounts[email] = uid
	return uid, nil
}

func (f *fakeIdentity) SignIn(ctx context.Context, email, password string) (*outbound.AuthSession, error) {
	uid, ok := f.accounts[email]
	if !ok {
		return nil, errors.NewInvalidCredentialsError()
	}
	return &outbound.AuthSession{
		UID:       uid,
		Token:     "token-" + uid,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeIdentity) SignOut(ctx context.Context, token string) error { return nil }

func (f *fakeIdentity) SendPasswordReset(ctx context.Context, email string) error { return nil }

func (f *fakeIdentity) ResolveToken(ctx context.Context, token string) (string, error) {
	return "", errors.NewUnauthorizedError("")
}

// blockingUserRepo parks FindByUID until released, to hold a toggle in
// its pending state.
type blockingUserRepo struct {
	outbound.UserRepository
	entered chan struct{}
	release chan struct{}
}

func (b *blockingUserRepo) FindByUID(ctx context.Context, uid string) (*user.User, error) {
	b.entered <- struct{}{}
	<-b.release
	return b.UserRepository.FindByUID(ctx, uid)
}

// failingUserRepo rejects every favorites write.
type failingUserRepo struct {
	outbound.UserRepository
}

func (f *failingUserRepo) AddFavorite(ctx context.Context, uid string, recipeID int) error {
	return fmt.Errorf("store unavailable")
}

func (f *failingUserRepo) RemoveFavorite(ctx context.Context, uid string, recipeID int) error {
	return fmt.Errorf("store unavailable")
}

func newTestService(t *testing.T, users outbound.UserRepository) (*AccountService, string) {
	t.Helper()
	identity := newFakeIdentity()
	recipes := memory.NewRecipeRepository()
	svc := NewAccountService(identity, users, recipes, zap.NewNop()).(*AccountService)

	profile, err := svc.Signup(context.Background(), signupCommand("ayse", "ayse@example.com"))
	require.NoError(t, err)
	return svc, profile.UID
}

func signupCommand(username, email string) inbound.SignupCommand {
	return inbound.SignupCommand{
		Username: username,
		Email:    email,
		Password: "sifre123",
	}
}

func TestSignupCreatesProfileWithEmptyFavorites(t *testing.T) {
	users := memory.NewUserRepository()
	svc, uid := newTestService(t, users)

	profile, err := svc.CurrentUser(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, "ayse", profile.Username)
	assert.Empty(t, profile.Favorites)
}

func TestCurrentUserMissingProfile(t *testing.T) {
	users := memory.NewUserRepository()
	svc, _ := newTestService(t, users)

	_, err := svc.CurrentUser(context.Background(), "ghost-uid")
	assert.True(t, errors.Is(err, errors.CodeUserNotFound))
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	users := memory.NewUserRepository()
	svc, uid := newTestService(t, users)
	ctx := context.Background()

	favorites, err := svc.ToggleFavorite(ctx, uid, 7)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, favorites)
	assert.Equal(t, toggleConfirmed, svc.toggles.outcome(uid, 7))

	favorites, err = svc.ToggleFavorite(ctx, uid, 7)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	profile, err := svc.CurrentUser(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, profile.Favorites)
}

func TestToggleFavoriteRequiresLogin(t *testing.T) {
	users := memory.NewUserRepository()
	svc, _ := newTestService(t, users)

	_, err := svc.ToggleFavorite(context.Background(), "", 7)
	assert.True(t, errors.Is(err, errors.CodeLoginRequired))
}

func TestToggleFavoriteRejectsSecondWhilePending(t *testing.T) {
	inner := memory.NewUserRepository()
	blocking := &blockingUserRepo{
		UserRepository: inner,
		entered:        make(chan struct{}, 1),
		release:        make(chan struct{}),
	}
	svc, uid := newTestService(t, blocking)
	ctx := context.Background()

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.ToggleFavorite(ctx, uid, 7)
		firstDone <- err
	}()

	<-blocking.entered
	_, err := svc.ToggleFavorite(ctx, uid, 7)
	assert.True(t, errors.Is(err, errors.CodeToggleInFlight))

	close(blocking.release)
	require.NoError(t, <-firstDone)
	assert.Equal(t, toggleConfirmed, svc.toggles.outcome(uid, 7))
}

func TestToggleFavoriteFailureRollsBack(t *testing.T) {
	inner := memory.NewUserRepository()
	svc, uid := newTestService(t, &failingUserRepo{UserRepository: inner})
	ctx := context.Background()

	_, err := svc.ToggleFavorite(ctx, uid, 7)
	require.Error(t, err)
	assert.Equal(t, toggleRolledBack, svc.toggles.outcome(uid, 7))

	// The failed toggle left the set untouched and the pair free.
	profile, err := svc.CurrentUser(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, profile.Favorites)
}

func TestFavoriteRecipesDropsDanglingIDs(t *testing.T) {
	users := memory.NewUserRepository()
	identity := newFakeIdentity()
	recipes := memory.NewRecipeRepository()
	require.NoError(t, recipes.BulkUpsert(context.Background(), []recipe.Recipe{{
		ID:         7,
		Name:       "Karnıyarık",
		Type:       recipe.TypeMain,
		Time:       60,
		Difficulty: recipe.DifficultyMedium,
		Cost:       recipe.CostCheap,
	}}))
	svc := NewAccountService(identity, users, recipes, zap.NewNop()).(*AccountService)

	ctx := context.Background()
	profile, err := svc.Signup(ctx, signupCommand("ayse", "ayse@example.com"))
	require.NoError(t, err)

	_, err = svc.ToggleFavorite(ctx, profile.UID, 7)
	require.NoError(t, err)
	_, err = svc.ToggleFavorite(ctx, profile.UID, 99) // no catalog record
	require.NoError(t, err)

	favorites, err := svc.FavoriteRecipes(ctx, profile.UID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, 7, favorites[0].ID)
}
