package gorm

import (
	"context"
	"errors"

	"github.com/lezzetli/v1/internal/domain/user"
	"github.com/lezzetli/v1/internal/ports/outbound"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository implements outbound.UserRepository using GORM
type UserRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *gorm.DB, logger *zap.Logger) outbound.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger.Named("user-repository"),
	}
}

// CreateProfile stores the initial profile record.
func (r *UserRepository) CreateProfile(ctx context.Context, u *user.User) error {
	model := UserModel{
		UID:      u.UID,
		Username: u.Username,
		Email:    u.Email,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByUID loads a profile with its favorites, in insertion order.
func (r *UserRepository) FindByUID(ctx context.Context, uid string) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).
		Preload("Favorites", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		First(&model, "uid = ?", uid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return userFromModel(model), nil
}

// FindByEmail loads a profile by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).
		Preload("Favorites", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		First(&model, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return userFromModel(model), nil
}

// AddFavorite inserts the membership row. Inserting an element that is
// already present is a no-op, which gives the set-union semantics.
func (r *UserRepository) AddFavorite(ctx context.Context, uid string, recipeID int) error {
	favorite := FavoriteModel{
		UserUID:  uid,
		RecipeID: recipeID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&favorite).Error
}

// RemoveFavorite deletes the membership row. Removing an absent element
// is a no-op.
func (r *UserRepository) RemoveFavorite(ctx context.Context, uid string, recipeID int) error {
	return r.db.WithContext(ctx).
		Where("user_uid = ? AND recipe_id = ?", uid, recipeID).
		Delete(&FavoriteModel{}).Error
}
