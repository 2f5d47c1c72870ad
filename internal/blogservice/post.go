package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
)

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrDuplicateTitle   = errors.New("duplicate title")
	ErrInvalidReference = errors.New("referenced row does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

func uniqueViolation(err error, column string) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique && strings.Contains(sqliteErr.Error(), column)
	}

	return false
}

// foreignKeyViolation reports whether err is a FOREIGN KEY constraint
// failure. SQLite does not name the failing constraint, so callers cannot
// tell which reference was bad.
func foreignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}

	return false
}

func (m *BlogModel) insertPost(ctx context.Context, p *Post) error {
	query := `
		INSERT INTO posts (title, subtitle, date, body, img_url, author_name, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`

	args := []any{p.Title, p.Subtitle, p.Date, p.Body, p.ImgURL, p.AuthorName, p.UserID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&p.ID)
	if err != nil {
		switch {
		case uniqueViolation(err, "posts.title"):
			return ErrDuplicateTitle
		case foreignKeyViolation(err):
			return ErrInvalidReference
		default:
			return err
		}
	}

	return nil
}

// getPostById joins the users table so the page can show the owning account
// alongside the denormalized author_name.
func (m *BlogModel) getPostById(ctx context.Context, id int) (*Post, error) {
	query := `
		SELECT p.id, p.title, p.subtitle, p.date, p.body, p.img_url, p.author_name, p.user_id, u.username
		FROM posts p
		JOIN users u ON p.user_id = u.id
		WHERE p.id = ?`

	row := m.db.QueryRowContext(ctx, query, id)

	var post Post
	err := row.Scan(&post.ID, &post.Title, &post.Subtitle, &post.Date, &post.Body, &post.ImgURL, &post.AuthorName, &post.UserID, &post.Author.Username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	post.Author.ID = post.UserID

	return &post, nil
}

func (m *BlogModel) getPosts(ctx context.Context) ([]Post, error) {
	query := `
		SELECT id, title, subtitle, date, body, img_url, author_name, user_id
		FROM posts
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var post Post
		err := rows.Scan(&post.ID, &post.Title, &post.Subtitle, &post.Date, &post.Body, &post.ImgURL, &post.AuthorName, &post.UserID)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// updatePost mutates the five editable fields and nothing else; id, date and
// owner are preserved.
func (m *BlogModel) updatePost(ctx context.Context, p *Post) error {
	query := `
		UPDATE posts
		SET title = ?, subtitle = ?, body = ?, img_url = ?, author_name = ?
		WHERE id = ?`

	res, err := m.db.ExecContext(ctx, query, p.Title, p.Subtitle, p.Body, p.ImgURL, p.AuthorName, p.ID)
	if err != nil {
		switch {
		case uniqueViolation(err, "posts.title"):
			return ErrDuplicateTitle
		default:
			return err
		}
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// deletePost removes the post; dependent comments go with it via the
// ON DELETE CASCADE on comments.post_id.
func (m *BlogModel) deletePost(ctx context.Context, id int) error {
	query := `
		DELETE FROM posts
		WHERE id = ?`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}
