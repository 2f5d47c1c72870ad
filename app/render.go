package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"

	"gopress/internal/blogservice"
	"gopress/internal/userservice"
)

//go:embed templates
var templateFS embed.FS

type errorData struct {
	Code    int
	Status  string
	Message string
}

type templateData struct {
	User     *userservice.User
	IsAdmin  bool
	Flash    string
	Posts    []blogservice.Post
	Post     *blogservice.Post
	Comments []blogservice.Comment
	Form     any
	Errors   map[string]string
	IsEdit   bool
	Error    errorData
}

var templateFuncs = template.FuncMap{
	// post bodies and comments are stored as HTML
	"safeHTML": func(s string) template.HTML { return template.HTML(s) },
}

// newTemplateCache parses every page template against the base layout once at
// startup.
func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := strings.TrimSuffix(filepath.Base(page), ".html")

		ts, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/base.html", page)
		if err != nil {
			return nil, fmt.Errorf("could not parse template %s: %w", page, err)
		}

		cache[name] = ts
	}

	return cache, nil
}

// newTemplateData pre-fills the fields every page needs: the logged-in user
// (if any) and a pending flash message.
func (app *application) newTemplateData(w http.ResponseWriter, r *http.Request) *templateData {
	user := app.getUserContext(r)

	data := &templateData{
		Flash:  app.popFlash(w, r),
		Errors: map[string]string{},
	}

	if user != nil && !user.IsAnonymous() {
		data.User = user
		data.IsAdmin = user.HasPermission(userservice.PermissionManagePosts)
	}

	return data
}

// render writes a fully-rendered page. Pages execute into a buffer first so a
// template failure becomes a 500 rather than a half-written response.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data *templateData) {
	ts, ok := app.templateCache[page]
	if !ok {
		app.serverErrorResponse(w, r, fmt.Errorf("template %q does not exist", page))
		return
	}

	buf := new(bytes.Buffer)

	err := ts.ExecuteTemplate(buf, "base", data)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

const (
	sessionCookieName = "session"
	flashCookieName   = "flash"
)

func (app *application) setSessionCookie(w http.ResponseWriter, session *userservice.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Plain,
		Path:     "/",
		Expires:  session.Expiry,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (app *application) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (app *application) signFlash(value string) string {
	mac := hmac.New(sha256.New, []byte(app.config.SessionSecret))
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// setFlash stores a one-shot message in an HMAC-signed cookie; the signature
// keeps the client from forging banner text.
func (app *application) setFlash(w http.ResponseWriter, message string) {
	value := base64.RawURLEncoding.EncodeToString([]byte(message))

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value + "." + app.signFlash(value),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending flash message, if any, and clears the cookie
// so it shows exactly once.
func (app *application) popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	value, sig, found := strings.Cut(cookie.Value, ".")
	if !found || !hmac.Equal([]byte(sig), []byte(app.signFlash(value))) {
		return ""
	}

	message, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return ""
	}

	return string(message)
}
