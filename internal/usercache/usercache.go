package usercache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/inkpost/inkpost/internal/model"
)

type Resolver interface {
	GetByID(ctx context.Context, userID string) (*model.User, error)
}

// WrapLRU fronts identity resolution with an expirable LRU. Only
// successful lookups are cached, so a deleted user is never reported
// as present longer than the TTL. Size <= 0 disables caching.
func WrapLRU(next Resolver, size int, ttl time.Duration) Resolver {
	if next == nil || size <= 0 || ttl <= 0 {
		return next
	}
	return &lruResolver{
		next:  next,
		cache: expirable.NewLRU[string, *model.User](size, nil, ttl),
	}
}

type lruResolver struct {
	next  Resolver
	cache *expirable.LRU[string, *model.User]
}

func (l *lruResolver) GetByID(ctx context.Context, userID string) (*model.User, error) {
	if cached, ok := l.cache.Get(userID); ok {
		return cloneUser(cached), nil
	}
	user, err := l.next.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	l.cache.Add(userID, cloneUser(user))
	return user, nil
}

func cloneUser(user *model.User) *model.User {
	if user == nil {
		return nil
	}
	clone := *user
	return &clone
}
