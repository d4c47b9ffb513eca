package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/inkpost/inkpost/internal/model"
	"github.com/inkpost/inkpost/internal/pkg/dbutil"
)

// RevocationRepo stores jtis of logged-out tokens until their natural
// expiry; the cleanup job prunes anything past expires_at.
type RevocationRepo struct {
	db *sql.DB
}

func NewRevocationRepo(db *sql.DB) *RevocationRepo {
	return &RevocationRepo{db: db}
}

func (r *RevocationRepo) Create(ctx context.Context, token *model.RevokedToken) error {
	data := map[string]interface{}{
		"jti":        token.JTI,
		"user_id":    token.UserID,
		"expires_at": token.ExpiresAt,
		"ctime":      token.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("revoked_tokens", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil && dbutil.IsConflict(err) {
		// revoking twice is a no-op
		return nil
	}
	return err
}

func (r *RevocationRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	where := map[string]interface{}{"jti": jti}
	sqlStr, args, err := builder.BuildSelect("revoked_tokens", where, []string{"jti"})
	if err != nil {
		return false, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return false, err
	}
	defer func() { _ = rows.Close() }()
	return rows.Next(), rows.Err()
}

func (r *RevocationRepo) DeleteExpired(ctx context.Context, now int64) (int64, error) {
	where := map[string]interface{}{"expires_at <": now}
	sqlStr, args, err := builder.BuildDelete("revoked_tokens", where)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
