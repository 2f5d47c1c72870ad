package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"gopress/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("incorrect username or password")
)

func NewUserService(db *sql.DB, mb common.MessageProducer) *UserService {
	return &UserService{
		m:  newUserModel(db),
		mb: mb,
	}
}

// Register creates a new user account and publishes a user.created event for
// the welcome email. Every account gets the comment:write permission; the
// first account ever registered additionally gets post:admin.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Email:    email,
		Password: Password{Plain: password},
	}

	err := u.Password.set(u.Password.Plain)
	if err != nil {
		return nil, err
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	count, err := s.m.countUsers(tx, ctx)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	err = s.m.insertUser(tx, ctx, &u)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	u.Permissions = Permissions{PermissionWriteComment}
	if count == 0 {
		u.Permissions = append(u.Permissions, PermissionManagePosts)
	}

	err = s.m.addUserPermission(tx, ctx, u.ID, u.Permissions...)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	data := struct {
		Email    string
		Username string
	}{
		Email:    u.Email,
		Username: u.Username,
	}

	emailData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, emailData, common.UserCreatedKey, common.UserExchange)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// Login verifies the credentials and returns the matching user. An unknown
// username yields ErrNotFound and a wrong password ErrAuthenticationFailure;
// the callers surface different messages for the two.
func (s *UserService) Login(ctx context.Context, username, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	return user, nil
}

// CreateSession issues a fresh session token for the user. Existing sessions
// stay valid so logins from multiple browsers do not evict each other.
func (s *UserService) CreateSession(ctx context.Context, userID int) (*Session, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	session, err := newSession(userID, SessionTokenTime)
	if err != nil {
		return nil, err
	}

	err = s.m.insertSession(ctx, session)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// GetUserBySessionToken resolves a plain session token from a cookie to the
// logged-in user, including their permissions.
func (s *UserService) GetUserBySessionToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	ValidateSessionToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserBySessionHash(ctx, hashToken(token))
}

// Logout removes every session belonging to the user.
func (s *UserService) Logout(ctx context.Context, userID int) error {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteSessionsForUser(ctx, userID)
}
