package main

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validPostForm() url.Values {
	return url.Values{
		"title":       {"The Life of Cactus"},
		"subtitle":    {"Who knew that cacti lived such interesting lives"},
		"author_name": {"Angela Yu"},
		"img_url":     {"https://example.com/cactus.jpg"},
		"body":        {"<p>Cacti are pretty interesting.</p>"},
	}
}

func TestStaticPages(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	testCases := []struct {
		name     string
		path     string
		wantBody string
	}{
		{name: "home", path: "/", wantBody: "Recent Posts"},
		{name: "about", path: "/about", wantBody: "About"},
		{name: "contact", path: "/contact", wantBody: "Contact"},
		{name: "register form", path: "/register", wantBody: "Register"},
		{name: "login form", path: "/login", wantBody: "Log In"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.get(t, tc.path)
			assert.Equal(t, http.StatusOK, status)
			assert.Contains(t, body, tc.wantBody)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, header, body := ts.get(t, "/healthcheck")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", header.Get("Content-Type"))
	assert.Contains(t, body, `"status": "available"`)
}

func TestRegister(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, header, _ := ts.postForm(t, "/register", url.Values{
		"username":        {"alice"},
		"email":           {"alice@example.com"},
		"password":        {"secret1"},
		"repeat_password": {"secret1"},
	})
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/", header.Get("Location"))

	// the first account can manage posts
	status, _, body := ts.get(t, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Log Out")
	assert.Contains(t, body, "New Post")

	ts.logout(t)
	ts.register(t, "bob", "bob@example.com", "secret1")

	status, _, body = ts.get(t, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Log Out")
	assert.NotContains(t, body, "New Post")
}

func TestRegisterPasswordMismatch(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, _, body := ts.postForm(t, "/register", url.Values{
		"username":        {"alice"},
		"email":           {"alice@example.com"},
		"password":        {"secret1"},
		"repeat_password": {"secret2"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, "Password not match")
}

func TestRegisterDuplicate(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ts.register(t, "alice", "alice@example.com", "secret1")
	ts.logout(t)

	status, header, _ := ts.postForm(t, "/register", url.Values{
		"username":        {"alice"},
		"email":           {"other@example.com"},
		"password":        {"secret1"},
		"repeat_password": {"secret1"},
	})
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/login", header.Get("Location"))

	// the flash survives exactly one page load
	status, _, body := ts.get(t, "/login")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "User already exist")

	_, _, body = ts.get(t, "/login")
	assert.NotContains(t, body, "User already exist")
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	testCases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{name: "short username", username: "ab", email: "ab@example.com", password: "secret1"},
		{name: "bad email", username: "alice", email: "not-an-email", password: "secret1"},
		{name: "short password", username: "alice", email: "alice@example.com", password: "12345"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, _ := ts.postForm(t, "/register", url.Values{
				"username":        {tc.username},
				"email":           {tc.email},
				"password":        {tc.password},
				"repeat_password": {tc.password},
			})
			assert.Equal(t, http.StatusUnprocessableEntity, status)
		})
	}
}

func TestLogin(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ts.register(t, "alice", "alice@example.com", "secret1")
	ts.logout(t)

	t.Run("unknown username", func(t *testing.T) {
		status, _, body := ts.postForm(t, "/login", url.Values{
			"username": {"nobody"},
			"password": {"secret1"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Contains(t, body, "Username or password doesn&#39;t exists")
	})

	t.Run("wrong password", func(t *testing.T) {
		status, _, body := ts.postForm(t, "/login", url.Values{
			"username": {"alice"},
			"password": {"wrongpass"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Contains(t, body, "Incorrect username or password")
	})

	t.Run("valid credentials", func(t *testing.T) {
		status, header, _ := ts.postForm(t, "/login", url.Values{
			"username": {"alice"},
			"password": {"secret1"},
		})
		assert.Equal(t, http.StatusSeeOther, status)
		assert.Equal(t, "/", header.Get("Location"))

		_, _, body := ts.get(t, "/")
		assert.Contains(t, body, "Log Out")
	})
}

func TestLogout(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ts.register(t, "alice", "alice@example.com", "secret1")

	status, header, _ := ts.get(t, "/logout")
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/", header.Get("Location"))

	_, _, body := ts.get(t, "/")
	assert.Contains(t, body, "Log In")
	assert.NotContains(t, body, "Log Out")
}

func TestLoggedInUserCannotRegister(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ts.register(t, "alice", "alice@example.com", "secret1")

	status, header, _ := ts.get(t, "/register")
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/", header.Get("Location"))

	status, header, _ = ts.get(t, "/login")
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/", header.Get("Location"))
}

func TestCreatePost(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ts.register(t, "alice", "alice@example.com", "secret1")

	status, _, body := ts.get(t, "/new-post")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "New Post")

	status, header, _ := ts.postForm(t, "/new-post", validPostForm())
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/", header.Get("Location"))

	status, _, body = ts.get(t, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "The Life of Cactus")

	status, _, body = ts.get(t, "/show-post/1")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Cacti are pretty interesting.")
	assert.Contains(t, body, "Edit Post")
	assert.Contains(t, body, "Delete Post")
}

func TestCreatePostValidation(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ts.register(t, "alice", "alice@example.com", "secret1")

	testCases := []struct {
		name  string
		field string
		value string
	}{
		{name: "short title", field: "title", value: "abc"},
		{name: "short subtitle", field: "subtitle", value: "short"},
		{name: "empty body", field: "body", value: ""},
		{name: "relative image url", field: "img_url", value: "/cactus.jpg"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			form := validPostForm()
			form.Set(tc.field, tc.value)

			status, _, _ := ts.postForm(t, "/new-post", form)
			assert.Equal(t, http.StatusUnprocessableEntity, status)
		})
	}
}

func TestCreatePostDuplicateTitle(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ts.register(t, "alice", "alice@example.com", "secret1")

	status, _, _ := ts.postForm(t, "/new-post", validPostForm())
	assert.Equal(t, http.StatusSeeOther, status)

	status, _, body := ts.postForm(t, "/new-post", validPostForm())
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, "a post with this title already exists")
}

func TestUpdatePost(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ts.register(t, "alice", "alice@example.com", "secret1")

	status, _, _ := ts.postForm(t, "/new-post", validPostForm())
	assert.Equal(t, http.StatusSeeOther, status)

	status, _, body := ts.get(t, "/edit-post/1")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "The Life of Cactus")

	form := validPostForm()
	form.Set("title", "Top 15 Things to do When You are Bored")
	status, header, _ := ts.postForm(t, "/edit-post/1", form)
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/show-post/1", header.Get("Location"))

	status, _, body = ts.get(t, "/show-post/1")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Top 15 Things to do When You are Bored")

	t.Run("unknown post", func(t *testing.T) {
		status, _, _ := ts.postForm(t, "/edit-post/99", validPostForm())
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestDeletePost(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ts.register(t, "alice", "alice@example.com", "secret1")

	status, _, _ := ts.postForm(t, "/new-post", validPostForm())
	assert.Equal(t, http.StatusSeeOther, status)

	status, header, _ := ts.get(t, "/delete-post/1")
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/", header.Get("Location"))

	status, _, _ = ts.get(t, "/show-post/1")
	assert.Equal(t, http.StatusNotFound, status)

	t.Run("already deleted", func(t *testing.T) {
		status, _, _ := ts.get(t, "/delete-post/1")
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestAdminRoutesRequirePermission(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	// first account takes the admin permission, second does not
	ts.register(t, "alice", "alice@example.com", "secret1")
	ts.logout(t)
	ts.register(t, "bob", "bob@example.com", "secret1")

	paths := []string{"/new-post", "/edit-post/1", "/delete-post/1"}
	for _, path := range paths {
		status, _, _ := ts.get(t, path)
		assert.Equal(t, http.StatusForbidden, status, "path %s", path)
	}
}

func TestAdminRoutesRedirectAnonymous(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	paths := []string{"/new-post", "/edit-post/1", "/delete-post/1", "/logout"}
	for _, path := range paths {
		status, header, _ := ts.get(t, path)
		assert.Equal(t, http.StatusSeeOther, status, "path %s", path)
		assert.Equal(t, "/login", header.Get("Location"), "path %s", path)
	}
}

func TestAddComment(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ts.register(t, "alice", "alice@example.com", "secret1")

	status, _, _ := ts.postForm(t, "/new-post", validPostForm())
	assert.Equal(t, http.StatusSeeOther, status)

	status, header, _ := ts.postForm(t, "/show-post/1", url.Values{
		"comment": {"<p>What a great read.</p>"},
	})
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/show-post/1", header.Get("Location"))

	status, _, body := ts.get(t, "/show-post/1")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "What a great read.")
	assert.Contains(t, body, "alice")
}

func TestAddCommentValidation(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ts.register(t, "alice", "alice@example.com", "secret1")

	status, _, _ := ts.postForm(t, "/new-post", validPostForm())
	assert.Equal(t, http.StatusSeeOther, status)

	t.Run("empty after stripping", func(t *testing.T) {
		status, _, _ := ts.postForm(t, "/show-post/1", url.Values{
			"comment": {"<p>   </p>"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})

	t.Run("unknown post", func(t *testing.T) {
		status, _, _ := ts.postForm(t, "/show-post/99", url.Values{
			"comment": {"hello"},
		})
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestAnonymousCommentRedirectsToLogin(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ts.register(t, "alice", "alice@example.com", "secret1")
	status, _, _ := ts.postForm(t, "/new-post", validPostForm())
	assert.Equal(t, http.StatusSeeOther, status)
	ts.logout(t)

	status, _, body := ts.get(t, "/show-post/1")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "to leave a comment")

	status, header, _ := ts.postForm(t, "/show-post/1", url.Values{
		"comment": {"anonymous drive-by"},
	})
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/login", header.Get("Location"))
}

func TestNotFound(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	testCases := []struct {
		name string
		path string
	}{
		{name: "unknown route", path: "/no-such-page"},
		{name: "unknown post id", path: "/show-post/42"},
		{name: "non-numeric post id", path: "/show-post/abc"},
		{name: "zero post id", path: "/show-post/0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.get(t, tc.path)
			assert.Equal(t, http.StatusNotFound, status)
			assert.Contains(t, body, fmt.Sprint(http.StatusNotFound))
		})
	}
}
