package service

import (
	"context"
	"strings"
	"time"

	"github.com/inkpost/inkpost/internal/model"
	appErr "github.com/inkpost/inkpost/internal/pkg/errors"
	"github.com/inkpost/inkpost/internal/pkg/jwt"
	"github.com/inkpost/inkpost/internal/pkg/password"
	"github.com/inkpost/inkpost/internal/pkg/timeutil"
)

// UserDirectory is the external directory the credential service and
// the authorization gate resolve identities against. It must enforce
// email uniqueness (Create returns appErr.ErrConflict on a duplicate).
type UserDirectory interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
}

// RevocationStore remembers logged-out token ids until they expire.
type RevocationStore interface {
	Create(ctx context.Context, token *model.RevokedToken) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type AuthService struct {
	users       UserDirectory
	revocations RevocationStore
	jwtSecret   []byte
	jwtTTL      time.Duration
}

func NewAuthService(users UserDirectory, revocations RevocationStore, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, revocations: revocations, jwtSecret: secret, jwtTTL: ttl}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Avatar   string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	now := timeutil.NowUnix()
	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		ID:           newID(),
		Name:         input.Name,
		Email:        strings.ToLower(input.Email),
		Avatar:       input.Avatar,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if appErr.IsConflict(err) {
			return nil, appErr.ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// Login returns the same ErrInvalidCredentials for an unknown email
// and for a wrong password, so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, "", appErr.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", appErr.ErrInvalidCredentials
	}
	token, err := jwt.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout puts the token's jti on the revocation list; the token stays
// self-contained otherwise and falls off the list once it expires.
func (s *AuthService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" {
		return appErr.ErrInvalidToken
	}
	expiresAt := int64(0)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Unix()
	}
	return s.revocations.Create(ctx, &model.RevokedToken{
		JTI:       claims.ID,
		UserID:    claims.UserID,
		ExpiresAt: expiresAt,
		Ctime:     timeutil.NowUnix(),
	})
}
