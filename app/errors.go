package main

import (
	"log/slog"
	"net/http"
)

func (app *application) logError(r *http.Request, err error) {
	var (
		method  = r.Method
		url     = r.URL.RequestURI()
		message = err.Error()
	)

	app.logger.Error(message, slog.String("method", method), slog.String("url", url))
}

// renderErrorPage writes the HTML error page; if even that fails it falls
// back to a plain-text response.
func (app *application) renderErrorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := app.newTemplateData(w, r)
	data.Error = errorData{
		Code:    status,
		Status:  http.StatusText(status),
		Message: message,
	}

	ts, ok := app.templateCache["error"]
	if !ok {
		http.Error(w, message, status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := ts.ExecuteTemplate(w, "base", data); err != nil {
		app.logError(r, err)
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	app.renderErrorPage(w, r, http.StatusInternalServerError, message)
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.renderErrorPage(w, r, http.StatusNotFound, "the page you were looking for could not be found")
}

func (app *application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	app.renderErrorPage(w, r, http.StatusForbidden, "you do not have permission to do that")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.renderErrorPage(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.renderErrorPage(w, r, http.StatusMethodNotAllowed, "that method is not allowed on this page")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.renderErrorPage(w, r, http.StatusTooManyRequests, "too many requests, slow down")
}
