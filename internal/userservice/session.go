package userservice

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base32"
	"time"
)

func hashToken(token string) []byte {
	hash := sha256.Sum256([]byte(token))
	return hash[:]
}

func newSession(userID int, ttl time.Duration) (*Session, error) {
	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}

	session := &Session{
		Plain:  base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes),
		UserID: userID,
		Expiry: time.Now().Add(ttl),
	}

	session.Hash = hashToken(session.Plain)

	return session, nil
}

func (m *DBModel) insertSession(ctx context.Context, session *Session) error {
	query := `
		INSERT INTO sessions (hash, user_id, expiry)
		VALUES (?, ?, ?)`

	_, err := m.db.ExecContext(ctx, query, session.Hash, session.UserID, session.Expiry)
	return err
}

// getUserBySessionHash returns the user owning an unexpired session together
// with their permissions.
func (m *DBModel) getUserBySessionHash(ctx context.Context, hash []byte) (*User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.created_at, u.version, p.permission
		FROM users u
		INNER JOIN sessions s ON u.id = s.user_id
		LEFT JOIN user_permissions p ON u.id = p.user_id
		WHERE s.hash = ? AND s.expiry > ?`

	rows, err := m.db.QueryContext(ctx, query, hash, time.Now())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var u User

	for rows.Next() {
		var p sql.NullString
		err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt, &u.Version, &p)
		if err != nil {
			return nil, err
		}

		if p.Valid {
			u.Permissions = append(u.Permissions, Permission(p.String))
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if u.ID == 0 {
		return nil, ErrNotFound
	}

	return &u, nil
}

func (m *DBModel) deleteSessionsForUser(ctx context.Context, userID int) error {
	query := `
		DELETE FROM sessions
		WHERE user_id = ?`

	_, err := m.db.ExecContext(ctx, query, userID)
	return err
}
