package service

import (
	"context"

	"github.com/inkpost/inkpost/internal/model"
	appErr "github.com/inkpost/inkpost/internal/pkg/errors"
	"github.com/inkpost/inkpost/internal/pkg/timeutil"
)

// BlogStore is the persistence behind blog CRUD.
type BlogStore interface {
	Create(ctx context.Context, blog *model.Blog) error
	GetByID(ctx context.Context, blogID string) (*model.Blog, error)
	List(ctx context.Context) ([]model.Blog, error)
	Update(ctx context.Context, blogID string, update map[string]interface{}) error
	Delete(ctx context.Context, blogID string) error
}

type BlogService struct {
	blogs    BlogStore
	users    UserDirectory
	renderer *markdownRenderer
}

func NewBlogService(blogs BlogStore, users UserDirectory) *BlogService {
	return &BlogService{blogs: blogs, users: users, renderer: newMarkdownRenderer()}
}

type BlogCreateInput struct {
	Title    string
	Content  string
	AuthorID string
}

func (s *BlogService) Create(ctx context.Context, input BlogCreateInput) (*model.BlogView, error) {
	if input.Title == "" || input.Content == "" || input.AuthorID == "" {
		return nil, appErr.ErrInvalid
	}
	if !IsValidID(input.AuthorID) {
		return nil, appErr.ErrInvalid
	}
	author, err := s.users.GetByID(ctx, input.AuthorID)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.ErrInvalid
		}
		return nil, err
	}
	now := timeutil.NowUnix()
	blog := &model.Blog{
		ID:       newID(),
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: input.AuthorID,
		Ctime:    now,
		Mtime:    now,
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}
	return s.view(blog, author), nil
}

func (s *BlogService) Get(ctx context.Context, blogID string) (*model.BlogView, error) {
	if !IsValidID(blogID) {
		return nil, appErr.ErrInvalid
	}
	blog, err := s.blogs.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, blog)
}

func (s *BlogService) List(ctx context.Context) ([]model.BlogView, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, err
	}
	// blogs usually share a handful of authors, resolve each once
	authors := make(map[string]*model.User)
	views := make([]model.BlogView, 0, len(blogs))
	for i := range blogs {
		blog := &blogs[i]
		author, ok := authors[blog.AuthorID]
		if !ok {
			author, err = s.users.GetByID(ctx, blog.AuthorID)
			if err != nil && !appErr.IsNotFound(err) {
				return nil, err
			}
			authors[blog.AuthorID] = author
		}
		views = append(views, *s.view(blog, author))
	}
	return views, nil
}

type BlogUpdateInput struct {
	Title   *string
	Content *string
}

func (s *BlogService) Update(ctx context.Context, blogID string, input BlogUpdateInput) (*model.BlogView, error) {
	if !IsValidID(blogID) {
		return nil, appErr.ErrInvalid
	}
	update := map[string]interface{}{}
	if input.Title != nil {
		if *input.Title == "" {
			return nil, appErr.ErrInvalid
		}
		update["title"] = *input.Title
	}
	if input.Content != nil {
		if *input.Content == "" {
			return nil, appErr.ErrInvalid
		}
		update["content"] = *input.Content
	}
	if len(update) == 0 {
		return nil, appErr.ErrInvalid
	}
	update["mtime"] = timeutil.NowUnix()
	if err := s.blogs.Update(ctx, blogID, update); err != nil {
		return nil, err
	}
	blog, err := s.blogs.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, blog)
}

func (s *BlogService) Delete(ctx context.Context, blogID string) error {
	if !IsValidID(blogID) {
		return appErr.ErrInvalid
	}
	return s.blogs.Delete(ctx, blogID)
}

func (s *BlogService) populate(ctx context.Context, blog *model.Blog) (*model.BlogView, error) {
	author, err := s.users.GetByID(ctx, blog.AuthorID)
	if err != nil && !appErr.IsNotFound(err) {
		return nil, err
	}
	return s.view(blog, author), nil
}

func (s *BlogService) view(blog *model.Blog, author *model.User) *model.BlogView {
	view := &model.BlogView{
		ID:          blog.ID,
		Title:       blog.Title,
		Content:     blog.Content,
		ContentHTML: s.renderer.Render(blog.Content),
		Ctime:       blog.Ctime,
		Mtime:       blog.Mtime,
	}
	if author != nil {
		view.Author = author.AuthorView()
	}
	return view
}
