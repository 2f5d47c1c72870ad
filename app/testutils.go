package main

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"gopress/internal/blogservice"
	"gopress/internal/common"
	"gopress/internal/userservice"
)

// discardProducer swallows user.created events so handler tests need neither
// RabbitMQ nor a mail consumer.
type discardProducer struct{}

func (p discardProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	return nil
}

func newTestApplication(t *testing.T) (*application, *sql.DB) {
	t.Helper()

	db := common.TestDB(t, "file://../migrations")

	templateCache, err := newTemplateCache()
	if err != nil {
		t.Fatal(err)
	}

	cfg := &Config{
		Port:           ":0",
		Environment:    "test",
		Version:        "test",
		SessionSecret:  "test-session-secret",
		LimiterEnabled: false,
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	app := &application{
		config:        cfg,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		templateCache: templateCache,
		userService:   userservice.NewUserService(db, discardProducer{}),
		blogService:   blogservice.NewBlogService(db, cache),
	}

	return app, db
}

type testServer struct {
	*httptest.Server
}

// newTestServer wraps httptest.Server with a cookie jar, so sessions persist
// across requests, and stops the client following redirects, so tests can
// assert on them.
func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	ts.Client().Jar = jar

	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, string) {
	t.Helper()

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, string(body)
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, string) {
	t.Helper()

	res, err := ts.Client().Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) postForm(t *testing.T, path string, form url.Values) (int, http.Header, string) {
	t.Helper()

	res, err := ts.Client().PostForm(ts.URL+path, form)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

// register signs up a user through the real handler and leaves the session
// cookie in the server's jar.
func (ts *testServer) register(t *testing.T, username, email, password string) {
	t.Helper()

	status, _, _ := ts.postForm(t, "/register", url.Values{
		"username":        {username},
		"email":           {email},
		"password":        {password},
		"repeat_password": {password},
	})
	if status != http.StatusSeeOther {
		t.Fatalf("registration of %q failed with status %d", username, status)
	}
}

func (ts *testServer) logout(t *testing.T) {
	t.Helper()

	status, _, _ := ts.get(t, "/logout")
	if status != http.StatusSeeOther {
		t.Fatalf("logout failed with status %d", status)
	}
}
