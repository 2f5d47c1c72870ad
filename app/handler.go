package main

import (
	"errors"
	"fmt"
	"net/http"

	"gopress/internal/blogservice"
	"gopress/internal/common"
	"gopress/internal/userservice"
)

type registerForm struct {
	Username       string
	Email          string
	Password       string
	RepeatPassword string
}

type loginForm struct {
	Username string
	Password string
}

type postForm struct {
	Title      string
	Subtitle   string
	AuthorName string
	ImgURL     string
	Body       string
}

type commentForm struct {
	Text string
}

func (app *application) homeHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := app.blogService.GetPosts(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	data := app.newTemplateData(w, r)
	data.Posts = posts

	app.render(w, r, http.StatusOK, "home", data)
}

func (app *application) aboutHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "about", app.newTemplateData(w, r))
}

func (app *application) contactHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "contact", app.newTemplateData(w, r))
}

func (app *application) registerFormHandler(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(w, r)
	data.Form = registerForm{}

	app.render(w, r, http.StatusOK, "register", data)
}

func (app *application) registerHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	form := registerForm{
		Username:       r.PostFormValue("username"),
		Email:          r.PostFormValue("email"),
		Password:       r.PostFormValue("password"),
		RepeatPassword: r.PostFormValue("repeat_password"),
	}

	if form.Password != form.RepeatPassword {
		data := app.newTemplateData(w, r)
		data.Form = form
		data.Flash = "Password not match"

		app.render(w, r, http.StatusUnprocessableEntity, "register", data)
		return
	}

	user, err := app.userService.Register(r.Context(), form.Username, form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrDuplicateUsername), errors.Is(err, userservice.ErrDuplicateEmail):
			app.setFlash(w, "User already exist")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			data := app.newTemplateData(w, r)
			data.Form = form
			data.Errors = validationErr.Errors

			app.render(w, r, http.StatusUnprocessableEntity, "register", data)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.loginAndRedirect(w, r, user.ID)
}

// loginAndRedirect establishes a session for the user and sends them to the
// post list.
func (app *application) loginAndRedirect(w http.ResponseWriter, r *http.Request, userID int) {
	session, err := app.userService.CreateSession(r.Context(), userID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.setSessionCookie(w, session)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) loginFormHandler(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(w, r)
	data.Form = loginForm{}

	app.render(w, r, http.StatusOK, "login", data)
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	form := loginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	rerender := func(flash string, fieldErrors map[string]string) {
		data := app.newTemplateData(w, r)
		data.Form = form
		data.Flash = flash
		if fieldErrors != nil {
			data.Errors = fieldErrors
		}

		app.render(w, r, http.StatusUnprocessableEntity, "login", data)
	}

	user, err := app.userService.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrNotFound):
			rerender("Username or password doesn't exists", nil)
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			rerender("Incorrect username or password", nil)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			rerender("", validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.loginAndRedirect(w, r, user.ID)
}

func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	err := app.userService.Logout(r.Context(), user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// showPostHandler renders a post with its comments and the comment form.
func (app *application) showPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	post, err := app.blogService.GetPostByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	comments, err := app.blogService.GetCommentsByPostID(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	data := app.newTemplateData(w, r)
	data.Post = post
	data.Comments = comments
	data.Form = commentForm{}

	app.render(w, r, http.StatusOK, "post", data)
}

// addCommentHandler handles the comment form on the post page. Redirecting
// back to the post afterwards keeps a refresh from resubmitting the form.
func (app *application) addCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	form := commentForm{Text: r.PostFormValue("comment")}
	user := app.getUserContext(r)

	_, err = app.blogService.AddComment(r.Context(), form.Text, user.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrInvalidReference):
			app.notFoundResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)

			post, err := app.blogService.GetPostByID(r.Context(), id)
			if err != nil {
				app.notFoundResponse(w, r)
				return
			}
			comments, err := app.blogService.GetCommentsByPostID(r.Context(), id)
			if err != nil {
				app.serverErrorResponse(w, r, err)
				return
			}

			data := app.newTemplateData(w, r)
			data.Post = post
			data.Comments = comments
			data.Form = form
			data.Errors = validationErr.Errors

			app.render(w, r, http.StatusUnprocessableEntity, "post", data)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/show-post/%d", id), http.StatusSeeOther)
}

func (app *application) newPostFormHandler(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(w, r)
	data.Form = postForm{}

	app.render(w, r, http.StatusOK, "editor", data)
}

func (app *application) parsePostForm(r *http.Request) (postForm, error) {
	if err := r.ParseForm(); err != nil {
		return postForm{}, err
	}

	return postForm{
		Title:      r.PostFormValue("title"),
		Subtitle:   r.PostFormValue("subtitle"),
		AuthorName: r.PostFormValue("author_name"),
		ImgURL:     r.PostFormValue("img_url"),
		Body:       r.PostFormValue("body"),
	}, nil
}

func (app *application) createPostHandler(w http.ResponseWriter, r *http.Request) {
	form, err := app.parsePostForm(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	req := &blogservice.CreatePostRequest{
		Title:      form.Title,
		Subtitle:   form.Subtitle,
		Body:       form.Body,
		ImgURL:     form.ImgURL,
		AuthorName: form.AuthorName,
		UserID:     user.ID,
	}

	_, err = app.blogService.CreatePost(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrDuplicateTitle):
			data := app.newTemplateData(w, r)
			data.Form = form
			data.Errors = map[string]string{"title": "a post with this title already exists"}

			app.render(w, r, http.StatusUnprocessableEntity, "editor", data)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			data := app.newTemplateData(w, r)
			data.Form = form
			data.Errors = validationErr.Errors

			app.render(w, r, http.StatusUnprocessableEntity, "editor", data)
		case errors.Is(err, blogservice.ErrInvalidReference):
			app.forbiddenResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// editPostFormHandler pre-fills the editor from the existing row.
func (app *application) editPostFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	post, err := app.blogService.GetPostByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	data := app.newTemplateData(w, r)
	data.Post = post
	data.IsEdit = true
	data.Form = postForm{
		Title:      post.Title,
		Subtitle:   post.Subtitle,
		AuthorName: post.AuthorName,
		ImgURL:     post.ImgURL,
		Body:       post.Body,
	}

	app.render(w, r, http.StatusOK, "editor", data)
}

func (app *application) updatePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	form, err := app.parsePostForm(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	req := &blogservice.UpdatePostRequest{
		Title:      form.Title,
		Subtitle:   form.Subtitle,
		Body:       form.Body,
		ImgURL:     form.ImgURL,
		AuthorName: form.AuthorName,
	}

	err = app.blogService.UpdatePost(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, blogservice.ErrDuplicateTitle):
			data := app.newTemplateData(w, r)
			data.Post = &blogservice.Post{ID: id}
			data.IsEdit = true
			data.Form = form
			data.Errors = map[string]string{"title": "a post with this title already exists"}

			app.render(w, r, http.StatusUnprocessableEntity, "editor", data)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			data := app.newTemplateData(w, r)
			data.Post = &blogservice.Post{ID: id}
			data.IsEdit = true
			data.Form = form
			data.Errors = validationErr.Errors

			app.render(w, r, http.StatusUnprocessableEntity, "editor", data)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/show-post/%d", id), http.StatusSeeOther)
}

func (app *application) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.blogService.DeletePost(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
