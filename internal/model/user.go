package model

// User is the directory record behind registration, login and the
// authorization gate. PasswordHash never leaves the process: it is
// excluded from JSON so every user view in a response is hash-free.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Avatar       string `json:"avatar,omitempty"`
	PasswordHash string `json:"-"`
	Ctime        int64  `json:"ctime"`
	Mtime        int64  `json:"mtime"`
}

// Author is the populated author view embedded in blog responses.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) AuthorView() Author {
	return Author{ID: u.ID, Name: u.Name, Email: u.Email}
}
