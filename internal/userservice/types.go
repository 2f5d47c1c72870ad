package userservice

import (
	"database/sql"
	"time"

	"gopress/internal/common"
)

type Permission string
type Permissions []Permission

const (
	// SessionTokenTime is how long a login session stays valid.
	SessionTokenTime time.Duration = 7 * 24 * time.Hour

	PermissionWriteComment Permission = "comment:write"
	PermissionManagePosts  Permission = "post:admin"
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m  *DBModel
	mb common.MessageProducer
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	Version   int       `json:"version"`

	Permissions Permissions `json:"permissions"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// Session is a server-side login session. Only the SHA-256 hash of the plain
// token is stored; the plain token travels in the session cookie.
type Session struct {
	Plain  string    `json:"-"`
	Hash   []byte    `json:"-"`
	UserID int       `json:"-"`
	Expiry time.Time `json:"-"`
}
