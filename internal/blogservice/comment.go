package blogservice

import (
	"context"
)

func (m *BlogModel) insertComment(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (text, user_id, post_id)
		VALUES (?, ?, ?)
		RETURNING id`

	err := m.db.QueryRowContext(ctx, query, c.Text, c.UserID, c.PostID).Scan(&c.ID)
	if err != nil {
		switch {
		case foreignKeyViolation(err):
			return ErrInvalidReference
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) getCommentsByPostId(ctx context.Context, postID int) ([]Comment, error) {
	query := `
		SELECT c.id, c.text, c.user_id, c.post_id, u.username
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.post_id = ?
		ORDER BY c.id`

	rows, err := m.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var comment Comment
		err := rows.Scan(&comment.ID, &comment.Text, &comment.UserID, &comment.PostID, &comment.AuthorName)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
