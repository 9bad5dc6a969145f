package sqldb

import (
	"github.com/jmoiron/sqlx"
	"github.com/wansing/blog/core"
)

const selectPosts = `SELECT posts.id, posts.title, posts.body, posts.created_at, posts.last_edit, posts.author_id,
	users.email AS author_email, users.username AS author_name
	FROM posts LEFT JOIN users ON users.id = posts.author_id`

type PostDB struct {
	*sqlx.DB
	dialect dialect
}

func NewPostDB(db *sqlx.DB) *PostDB {
	return &PostDB{
		DB:      db,
		dialect: dialectOf(db),
	}
}

func (db *PostDB) CountPosts() (int, error) {
	var count int
	return count, db.Get(&count, "SELECT COUNT(*) FROM posts")
}

func (db *PostDB) DeletePost(id int) error {
	return requireAffected(db.Exec(db.Rebind("DELETE FROM posts WHERE id = ?"), id))
}

func (db *PostDB) GetPost(id int) (*core.Post, error) {
	var p = &core.Post{}
	if err := db.Get(p, db.Rebind(selectPosts+" WHERE posts.id = ?"), id); err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (db *PostDB) GetPosts(limit, offset int) ([]*core.Post, error) {
	var posts = []*core.Post{}
	return posts, db.Select(&posts, db.Rebind(selectPosts+" ORDER BY posts.created_at DESC, posts.id DESC LIMIT ? OFFSET ?"), limit, offset)
}

// InsertPost inserts a post in a transaction. On failure, for example a duplicate title, the transaction is rolled back.
func (db *PostDB) InsertPost(p *core.Post) error {

	tx, err := db.Beginx()
	if err != nil {
		return err
	}

	id, err := insertID(tx, db.dialect,
		"INSERT INTO posts (title, body, created_at, last_edit, author_id) VALUES (?, ?, ?, ?, ?)",
		p.Title, p.Body, p.CreatedAt, p.LastEdit, p.AuthorID)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	p.ID = id
	return nil
}

func (db *PostDB) UpdatePost(p *core.Post) error {
	return requireAffected(db.Exec(db.Rebind("UPDATE posts SET title = ?, body = ?, last_edit = ? WHERE id = ?"), p.Title, p.Body, p.LastEdit, p.ID))
}
