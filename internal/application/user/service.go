// Package user provides the application layer for accounts: signup and
// sign-in against the identity provider, profile enrichment, and the
// favorites set with its toggle protocol.
package user

import (
	"context"
	"strings"

	"github.com/lezzetli/v1/internal/domain/recipe"
	"github.com/lezzetli/v1/internal/domain/user"
	"github.com/lezzetli/v1/internal/ports/inbound"
	"github.com/lezzetli/v1/internal/ports/outbound"
	"github.com/lezzetli/v1/pkg/errors"
	"go.uber.org/zap"
)

// AccountService implements the account use cases. It is constructed once
// at process start and injected wherever the session state is needed;
// there is no module-level mutable state.
type AccountService struct {
	identity outbound.IdentityProvider
	users    outbound.UserRepository
	recipes  outbound.RecipeRepository
	toggles  *toggleTracker
	logger   *zap.Logger
}

// NewAccountService creates an account service.
func NewAccountService(
	identity outbound.IdentityProvider,
	users outbound.UserRepository,
	recipes outbound.RecipeRepository,
	logger *zap.Logger,
) inbound.AccountService {
	return &AccountService{
		identity: identity,
		users:    users,
		recipes:  recipes,
		toggles:  newToggleTracker(),
		logger:   logger.Named("account-service"),
	}
}

// Signup creates the identity account and the profile record in one flow.
// The profile starts with an empty favorites list.
func (s *AccountService) Signup(ctx context.Context, cmd inbound.SignupCommand) (*user.User, error) {
	username := strings.TrimSpace(cmd.Username)
	if username == "" {
		return nil, errors.NewValidationError("username is required")
	}
	if len(username) > user.MaxUsernameLength {
		return nil, errors.NewValidationError("username is too long")
	}
	if err := user.ValidateEmail(cmd.Email); err != nil {
		return nil, errors.NewValidationError("invalid email address")
	}

	uid, err := s.identity.CreateAccount(ctx, cmd.Email, cmd.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create account")
	}

	profile, err := user.NewProfile(uid, username, cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.users.CreateProfile(ctx, profile); err != nil {
		// The identity record exists but the profile write failed; the
		// account will resolve to anonymous until the profile is repaired.
		s.logger.Error("profile creation failed after account creation",
			zap.String("uid", uid),
			zap.Error(err),
		)
		return nil, errors.NewDatabaseError("create user profile", err)
	}

	s.logger.Info("user signed up", zap.String("uid", uid))
	return profile, nil
}

// Login signs the user in and enriches the identity with the stored
// profile. An identity whose profile record is missing resolves to an
// error rather than a partially populated user.
func (s *AccountService) Login(ctx context.Context, email, password string) (*outbound.AuthSession, *user.User, error) {
	session, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, nil, errors.Wrap(err, "sign-in failed")
	}

	profile, err := s.CurrentUser(ctx, session.UID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user logged in", zap.String("uid", session.UID))
	return session, profile, nil
}

// Logout revokes the session token.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	if err := s.identity.SignOut(ctx, token); err != nil {
		return errors.Wrap(err, "sign-out failed")
	}
	return nil
}

// SendPasswordReset dispatches a reset link for the given address.
func (s *AccountService) SendPasswordReset(ctx context.Context, email string) error {
	if err := user.ValidateEmail(email); err != nil {
		return errors.NewValidationError("invalid email address")
	}
	if err := s.identity.SendPasswordReset(ctx, email); err != nil {
		return errors.Wrap(err, "password reset failed")
	}
	return nil
}

// CurrentUser resolves a uid to the enriched profile.
func (s *AccountService) CurrentUser(ctx context.Context, uid string) (*user.User, error) {
	profile, err := s.users.FindByUID(ctx, uid)
	if err != nil {
		if err == user.ErrUserNotFound {
			s.logger.Error("identity exists but profile record is missing",
				zap.String("uid", uid),
			)
			return nil, errors.NewUserNotFoundError(uid)
		}
		return nil, errors.NewDatabaseError("load user profile", err)
	}
	return profile, nil
}

// ToggleFavorite adds or removes recipeID from the user's favorites. The
// remote write is an atomic set operation and is awaited before the
// resulting set is returned; on failure nothing changes. A toggle for a
// pair that is already pending is rejected rather than queued.
func (s *AccountService) ToggleFavorite(ctx context.Context, uid string, recipeID int) ([]int, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, errors.NewLoginRequiredError("manage favorites")
	}

	if !s.toggles.begin(uid, recipeID) {
		return nil, errors.New(errors.CodeToggleInFlight, "Toggle already in progress",
			"A favorite update for this recipe has not completed yet")
	}

	profile, err := s.users.FindByUID(ctx, uid)
	if err != nil {
		s.toggles.rollback(uid, recipeID)
		if err == user.ErrUserNotFound {
			return nil, errors.NewUserNotFoundError(uid)
		}
		return nil, errors.NewDatabaseError("load user profile", err)
	}

	next, added := profile.ToggledFavorites(recipeID)
	if added {
		err = s.users.AddFavorite(ctx, uid, recipeID)
	} else {
		err = s.users.RemoveFavorite(ctx, uid, recipeID)
	}
	if err != nil {
		s.toggles.rollback(uid, recipeID)
		s.logger.Error("favorite toggle failed",
			zap.String("uid", uid),
			zap.Int("recipe_id", recipeID),
			zap.Bool("adding", added),
			zap.Error(err),
		)
		return nil, errors.NewDatabaseError("update favorites", err)
	}

	s.toggles.confirm(uid, recipeID)
	return next, nil
}

// FavoriteRecipes resolves the user's favorites to recipes. IDs that no
// longer exist in the catalog are filtered out by their absence from the
// lookup result.
func (s *AccountService) FavoriteRecipes(ctx context.Context, uid string) ([]recipe.Recipe, error) {
	profile, err := s.CurrentUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(profile.Favorites) == 0 {
		return []recipe.Recipe{}, nil
	}
	recipes, err := s.recipes.FindByIDs(ctx, profile.Favorites)
	if err != nil {
		return nil, errors.NewDatabaseError("load favorite recipes", err)
	}
	return recipes, nil
}
