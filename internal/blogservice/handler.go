package blogservice

import (
	"context"
	"database/sql"
	"time"

	"gopress/internal/common"
)

// dateFormat matches the human-formatted publication date the site has
// always shown, e.g. "August 29, 2026".
const dateFormat = "January 02, 2006"

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

type CreatePostRequest struct {
	Title      string
	Subtitle   string
	Body       string
	ImgURL     string
	AuthorName string
	UserID     int
}

// CreatePost validates the form fields, stamps today's date and persists the
// post owned by the given user.
func (s *BlogService) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateSubtitle(v, req.Subtitle)
	validateAuthorName(v, req.AuthorName)
	validateImgURL(v, req.ImgURL)
	validateBody(v, req.Body)
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	post := &Post{
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		Date:       time.Now().Format(dateFormat),
		Body:       sanitizeHTML(req.Body),
		ImgURL:     req.ImgURL,
		AuthorName: req.AuthorName,
		UserID:     req.UserID,
	}

	if err := s.m.insertPost(ctx, post); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyPosts())

	return post, nil
}

// GetPostByID returns a post with its author joined in.
func (s *BlogService) GetPostByID(ctx context.Context, id int) (*Post, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyPost(id)); ok {
		return cached.(*Post), nil
	}

	post, err := s.m.getPostById(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyPost(id), post)

	return post, nil
}

// GetPosts returns every post in storage order. The list has never been
// paginated.
func (s *BlogService) GetPosts(ctx context.Context) ([]Post, error) {
	if cached, ok := s.c.Get(common.CacheKeyPosts()); ok {
		return cached.([]Post), nil
	}

	posts, err := s.m.getPosts(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyPosts(), posts)

	return posts, nil
}

type UpdatePostRequest struct {
	Title      string
	Subtitle   string
	Body       string
	ImgURL     string
	AuthorName string
}

// UpdatePost mutates exactly the five editable fields of an existing post.
func (s *BlogService) UpdatePost(ctx context.Context, id int, req *UpdatePostRequest) error {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateSubtitle(v, req.Subtitle)
	validateAuthorName(v, req.AuthorName)
	validateImgURL(v, req.ImgURL)
	validateBody(v, req.Body)
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	post := &Post{
		ID:         id,
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		Body:       sanitizeHTML(req.Body),
		ImgURL:     req.ImgURL,
		AuthorName: req.AuthorName,
	}

	if err := s.m.updatePost(ctx, post); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyPost(id))
	s.c.Delete(common.CacheKeyPosts())

	return nil
}

// DeletePost removes a post and, through the schema, its comments.
func (s *BlogService) DeletePost(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.deletePost(ctx, id); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyPost(id))
	s.c.Delete(common.CacheKeyPosts())
	s.c.Delete(common.CacheKeyComments(id))

	return nil
}

// AddComment strips the rich-text paragraph wrapper from the submission and
// stores the comment against the post and the acting user.
func (s *BlogService) AddComment(ctx context.Context, text string, userID, postID int) (*Comment, error) {
	text = stripParagraphWrapper(sanitizeHTML(text))

	v := common.NewValidator()
	validateText(v, text)
	validateInt(v, userID, "user_id")
	validateInt(v, postID, "post_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	comment := &Comment{
		Text:   text,
		UserID: userID,
		PostID: postID,
	}

	if err := s.m.insertComment(ctx, comment); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyComments(postID))

	return comment, nil
}

// GetCommentsByPostID returns a post's comments oldest first, with the
// commenting usernames joined in.
func (s *BlogService) GetCommentsByPostID(ctx context.Context, postID int) ([]Comment, error) {
	v := common.NewValidator()
	validateInt(v, postID, "post_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyComments(postID)); ok {
		return cached.([]Comment), nil
	}

	comments, err := s.m.getCommentsByPostId(ctx, postID)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyComments(postID), comments)

	return comments, nil
}
