package repo_test

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/internal/db"
	"github.com/inkpost/inkpost/internal/model"
	appErr "github.com/inkpost/inkpost/internal/pkg/errors"
	"github.com/inkpost/inkpost/internal/repo"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	conn, err := db.Open(config.DatabaseConfig{
		Host:     host,
		Port:     5432,
		User:     "inkpost",
		Password: "inkpost_pass",
		DBName:   "inkpost_test",
		SSLMode:  "disable",
	})
	require.NoError(t, err)
	require.NoError(t, db.ApplyMigrations(conn))
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func newTestID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func seedUser(t *testing.T, users *repo.UserRepo, email string) *model.User {
	t.Helper()
	now := time.Now().Unix()
	user := &model.User{
		ID:           newTestID(),
		Name:         "Alice",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Ctime:        now,
		Mtime:        now,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestUserRepoRoundTrip(t *testing.T) {
	conn := openTestDB(t)
	users := repo.NewUserRepo(conn)
	ctx := context.Background()

	email := newTestID() + "@example.com"
	user := seedUser(t, users, email)

	byEmail, err := users.GetByEmail(ctx, email)
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	byID, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, email, byID.Email)

	_, err = users.GetByEmail(ctx, "missing-"+email)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestUserRepoDuplicateEmail(t *testing.T) {
	conn := openTestDB(t)
	users := repo.NewUserRepo(conn)
	ctx := context.Background()

	email := newTestID() + "@example.com"
	seedUser(t, users, email)

	now := time.Now().Unix()
	err := users.Create(ctx, &model.User{
		ID:           newTestID(),
		Name:         "Other",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Ctime:        now,
		Mtime:        now,
	})
	require.ErrorIs(t, err, appErr.ErrConflict)
}

func TestBlogRepoCRUD(t *testing.T) {
	conn := openTestDB(t)
	users := repo.NewUserRepo(conn)
	blogs := repo.NewBlogRepo(conn)
	ctx := context.Background()

	author := seedUser(t, users, newTestID()+"@example.com")
	now := time.Now().Unix()
	blog := &model.Blog{
		ID:       newTestID(),
		Title:    "T",
		Content:  "C",
		AuthorID: author.ID,
		Ctime:    now,
		Mtime:    now,
	}
	require.NoError(t, blogs.Create(ctx, blog))

	fetched, err := blogs.GetByID(ctx, blog.ID)
	require.NoError(t, err)
	require.Equal(t, "T", fetched.Title)

	require.NoError(t, blogs.Update(ctx, blog.ID, map[string]interface{}{"title": "T2", "mtime": now + 1}))
	fetched, err = blogs.GetByID(ctx, blog.ID)
	require.NoError(t, err)
	require.Equal(t, "T2", fetched.Title)

	require.NoError(t, blogs.Delete(ctx, blog.ID))
	require.ErrorIs(t, blogs.Delete(ctx, blog.ID), appErr.ErrNotFound)
	_, err = blogs.GetByID(ctx, blog.ID)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestRevocationRepo(t *testing.T) {
	conn := openTestDB(t)
	revocations := repo.NewRevocationRepo(conn)
	ctx := context.Background()

	now := time.Now().Unix()
	jti := newTestID()
	require.NoError(t, revocations.Create(ctx, &model.RevokedToken{
		JTI:       jti,
		UserID:    newTestID(),
		ExpiresAt: now + 3600,
		Ctime:     now,
	}))

	revoked, err := revocations.IsRevoked(ctx, jti)
	require.NoError(t, err)
	require.True(t, revoked)

	// revoking the same jti twice is a no-op
	require.NoError(t, revocations.Create(ctx, &model.RevokedToken{
		JTI:       jti,
		UserID:    newTestID(),
		ExpiresAt: now + 3600,
		Ctime:     now,
	}))

	expiredJTI := newTestID()
	require.NoError(t, revocations.Create(ctx, &model.RevokedToken{
		JTI:       expiredJTI,
		UserID:    newTestID(),
		ExpiresAt: now - 10,
		Ctime:     now - 3600,
	}))
	deleted, err := revocations.DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.GreaterOrEqual(t, deleted, int64(1))

	revoked, err = revocations.IsRevoked(ctx, expiredJTI)
	require.NoError(t, err)
	require.False(t, revoked)
}
