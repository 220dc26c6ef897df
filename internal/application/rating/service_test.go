package rating

import (
	"context"
	"testing"

	domainrating "github.com/lezzetli/v1/internal/domain/rating"
	"github.com/lezzetli/v1/internal/infrastructure/persistence/memory"
	"github.com/lezzetli/v1/internal/ports/inbound"
	"github.com/lezzetli/v1/internal/ports/outbound"
	"github.com/lezzetli/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingRepo records how many times the store was reached.
type countingRepo struct {
	outbound.RatingRepository
	creates int
}

func (c *countingRepo) Create(ctx context.Context, r *domainrating.Rating) (*domainrating.Rating, error) {
	c.creates++
	return c.RatingRepository.Create(ctx, r)
}

func validCommand() inbound.AddRatingCommand {
	return inbound.AddRatingCommand{
		RecipeID: 7,
		UserID:   "uid-1",
		Username: "ayse",
		Value:    4,
		Comment:  "Çok lezzetli oldu",
	}
}

func TestAddAssignsKeyAndTimestamp(t *testing.T) {
	svc := NewService(memory.NewRatingRepository(), zap.NewNop())

	stored, err := svc.Add(context.Background(), validCommand())
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.Equal(t, 4, stored.Value)
}

func TestAddValidationNeverReachesStore(t *testing.T) {
	repo := &countingRepo{RatingRepository: memory.NewRatingRepository()}
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	outOfRange := validCommand()
	outOfRange.Value = 6
	_, err := svc.Add(ctx, outOfRange)
	assert.True(t, errors.Is(err, errors.CodeValidationFailed))

	tooLong := validCommand()
	tooLong.Comment = string(make([]byte, domainrating.MaxCommentLength+1))
	_, err = svc.Add(ctx, tooLong)
	assert.True(t, errors.Is(err, errors.CodeValidationFailed))

	assert.Zero(t, repo.creates)
}

func TestListByRecipeNewestFirst(t *testing.T) {
	svc := NewService(memory.NewRatingRepository(), zap.NewNop())
	ctx := context.Background()

	first, err := svc.Add(ctx, validCommand())
	require.NoError(t, err)
	second, err := svc.Add(ctx, validCommand())
	require.NoError(t, err)

	ratings, err := svc.ListByRecipe(ctx, 7)
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	assert.Equal(t, second.ID, ratings[0].ID)
	assert.Equal(t, first.ID, ratings[1].ID)
}

func TestDeleteByOwner(t *testing.T) {
	svc := NewService(memory.NewRatingRepository(), zap.NewNop())
	ctx := context.Background()

	stored, err := svc.Add(ctx, validCommand())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, stored.ID, "uid-1"))

	ratings, err := svc.ListByRecipe(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, ratings)
}

func TestDeleteByNonOwnerIsRejected(t *testing.T) {
	svc := NewService(memory.NewRatingRepository(), zap.NewNop())
	ctx := context.Background()

	stored, err := svc.Add(ctx, validCommand())
	require.NoError(t, err)

	err = svc.Delete(ctx, stored.ID, "uid-2")
	assert.True(t, errors.Is(err, errors.CodeNotRatingOwner))

	// The record is intact.
	ratings, err := svc.ListByRecipe(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, ratings, 1)
}

func TestDeleteMissingRating(t *testing.T) {
	svc := NewService(memory.NewRatingRepository(), zap.NewNop())

	err := svc.Delete(context.Background(), "no-such-id", "uid-1")
	assert.True(t, errors.Is(err, errors.CodeRatingNotFound))
}
