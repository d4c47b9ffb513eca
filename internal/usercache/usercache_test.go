package usercache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inkpost/inkpost/internal/model"
	appErr "github.com/inkpost/inkpost/internal/pkg/errors"
)

type countingResolver struct {
	users map[string]*model.User
	calls int
}

func (c *countingResolver) GetByID(ctx context.Context, userID string) (*model.User, error) {
	c.calls++
	user, ok := c.users[userID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return user, nil
}

func TestWrapLRUCachesHits(t *testing.T) {
	next := &countingResolver{users: map[string]*model.User{
		"user-1": {ID: "user-1", Name: "Alice"},
	}}
	resolver := WrapLRU(next, 16, time.Minute)

	first, err := resolver.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	second, err := resolver.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, 1, next.calls)
	require.Equal(t, first.ID, second.ID)

	// cached copies must not alias each other
	first.Name = "mutated"
	require.Equal(t, "Alice", second.Name)
}

func TestWrapLRUDoesNotCacheMisses(t *testing.T) {
	next := &countingResolver{users: map[string]*model.User{}}
	resolver := WrapLRU(next, 16, time.Minute)

	_, err := resolver.GetByID(context.Background(), "user-1")
	require.ErrorIs(t, err, appErr.ErrNotFound)
	_, err = resolver.GetByID(context.Background(), "user-1")
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.Equal(t, 2, next.calls)
}

func TestWrapLRUDisabled(t *testing.T) {
	next := &countingResolver{}
	require.Equal(t, Resolver(next), WrapLRU(next, 0, time.Minute))
}
