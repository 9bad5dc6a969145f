package core

import (
	"database/sql"
	"time"
)

type Post struct {
	ID        int           `db:"id"`
	Title     string        `db:"title"`
	Body      string        `db:"body"`
	CreatedAt int64         `db:"created_at"`
	LastEdit  sql.NullInt64 `db:"last_edit"`
	AuthorID  sql.NullInt64 `db:"author_id"`

	// joined from users, read-only
	AuthorEmail sql.NullString `db:"author_email"`
	AuthorName  sql.NullString `db:"author_name"`
}

// Author returns the username or email address of the author, or the empty string.
func (p *Post) Author() string {
	if p.AuthorName.String != "" {
		return p.AuthorName.String
	}
	return p.AuthorEmail.String
}

type PostDB interface {
	CountPosts() (int, error)
	DeletePost(id int) error
	GetPost(id int) (*Post, error)
	GetPosts(limit, offset int) ([]*Post, error) // newest first
	InsertPost(p *Post) error                    // sets p.ID, must not persist anything on failure
	UpdatePost(p *Post) error                    // title, body, last_edit
}

// CreatePost inserts a post written by author.
// Title uniqueness is not checked here, the database refuses duplicates.
func (c *CoreDB) CreatePost(author *User, title, body string) (*Post, error) {
	var p = &Post{
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().Unix(),
	}
	if author != nil {
		p.AuthorID = sql.NullInt64{Int64: int64(author.ID), Valid: true}
		p.AuthorEmail = sql.NullString{String: author.Email, Valid: true}
		p.AuthorName = sql.NullString{String: author.Username, Valid: author.Username != ""}
	}
	if err := c.InsertPost(p); err != nil {
		return nil, err
	}
	return p, nil
}

// EditPost changes title and body of a post and sets its last edit time.
func (c *CoreDB) EditPost(p *Post, title, body string) error {
	p.Title = title
	p.Body = body
	p.LastEdit = sql.NullInt64{Int64: time.Now().Unix(), Valid: true}
	return c.UpdatePost(p)
}
