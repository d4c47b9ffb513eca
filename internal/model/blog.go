package model

type Blog struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	AuthorID string `json:"author_id"`
	Ctime    int64  `json:"ctime"`
	Mtime    int64  `json:"mtime"`
}

// BlogView is the response shape for a blog: the raw markdown, the
// rendered HTML and the populated author.
type BlogView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentHTML string `json:"content_html"`
	Author      Author `json:"author"`
	Ctime       int64  `json:"ctime"`
	Mtime       int64  `json:"mtime"`
}
