package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/inkpost/inkpost/internal/model"
	"github.com/inkpost/inkpost/internal/pkg/dbutil"
	appErr "github.com/inkpost/inkpost/internal/pkg/errors"
)

var blogFields = []string{"id", "title", "content", "author_id", "ctime", "mtime"}

type BlogRepo struct {
	db *sql.DB
}

func NewBlogRepo(db *sql.DB) *BlogRepo {
	return &BlogRepo{db: db}
}

func (r *BlogRepo) Create(ctx context.Context, blog *model.Blog) error {
	data := map[string]interface{}{
		"id":        blog.ID,
		"title":     blog.Title,
		"content":   blog.Content,
		"author_id": blog.AuthorID,
		"ctime":     blog.Ctime,
		"mtime":     blog.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("blogs", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *BlogRepo) GetByID(ctx context.Context, blogID string) (*model.Blog, error) {
	where := map[string]interface{}{"id": blogID}
	sqlStr, args, err := builder.BuildSelect("blogs", where, blogFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var blog model.Blog
	if err := rows.Scan(&blog.ID, &blog.Title, &blog.Content, &blog.AuthorID, &blog.Ctime, &blog.Mtime); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *BlogRepo) List(ctx context.Context) ([]model.Blog, error) {
	where := map[string]interface{}{"_orderby": "ctime desc"}
	sqlStr, args, err := builder.BuildSelect("blogs", where, blogFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	blogs := make([]model.Blog, 0)
	for rows.Next() {
		var blog model.Blog
		if err := rows.Scan(&blog.ID, &blog.Title, &blog.Content, &blog.AuthorID, &blog.Ctime, &blog.Mtime); err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}
	return blogs, rows.Err()
}

func (r *BlogRepo) Update(ctx context.Context, blogID string, update map[string]interface{}) error {
	where := map[string]interface{}{"id": blogID}
	sqlStr, args, err := builder.BuildUpdate("blogs", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *BlogRepo) Delete(ctx context.Context, blogID string) error {
	where := map[string]interface{}{"id": blogID}
	sqlStr, args, err := builder.BuildDelete("blogs", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
