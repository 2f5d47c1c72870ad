package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"gopress/internal/userservice"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	// auth
	router.HandlerFunc(http.MethodGet, "/register", app.requireAnonymousUser(app.registerFormHandler))
	router.HandlerFunc(http.MethodPost, "/register", app.requireAnonymousUser(app.registerHandler))
	router.HandlerFunc(http.MethodGet, "/login", app.requireAnonymousUser(app.loginFormHandler))
	router.HandlerFunc(http.MethodPost, "/login", app.requireAnonymousUser(app.loginHandler))
	router.HandlerFunc(http.MethodGet, "/logout", app.requireAuthUser(app.logoutHandler))

	// posts and comments
	router.HandlerFunc(http.MethodGet, "/", app.homeHandler)
	router.HandlerFunc(http.MethodGet, "/show-post/:id", app.showPostHandler)
	router.HandlerFunc(http.MethodPost, "/show-post/:id", app.requireAuthUser(app.addCommentHandler))
	router.HandlerFunc(http.MethodGet, "/new-post", app.requirePermission(app.newPostFormHandler, userservice.PermissionManagePosts))
	router.HandlerFunc(http.MethodPost, "/new-post", app.requirePermission(app.createPostHandler, userservice.PermissionManagePosts))
	router.HandlerFunc(http.MethodGet, "/edit-post/:id", app.requirePermission(app.editPostFormHandler, userservice.PermissionManagePosts))
	router.HandlerFunc(http.MethodPost, "/edit-post/:id", app.requirePermission(app.updatePostHandler, userservice.PermissionManagePosts))
	router.HandlerFunc(http.MethodGet, "/delete-post/:id", app.requirePermission(app.deletePostHandler, userservice.PermissionManagePosts))

	// static pages
	router.HandlerFunc(http.MethodGet, "/about", app.aboutHandler)
	router.HandlerFunc(http.MethodGet, "/contact", app.contactHandler)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthCheckHandler)

	return app.recoverPanic(app.rateLimit(app.logRequest(app.authenticate(router))))
}
