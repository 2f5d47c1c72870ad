package blogservice

import (
	"database/sql"

	"gopress/internal/common"
	"gopress/internal/userservice"
)

type Post struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	// Date is the human-formatted publication date, e.g. "August 29, 2026".
	Date string `json:"date"`
	// Body is rich text stored as HTML.
	Body       string           `json:"body"`
	ImgURL     string           `json:"img_url"`
	AuthorName string           `json:"author_name"`
	UserID     int              `json:"user_id"`
	Author     userservice.User `json:"author"`
}

type Comment struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	UserID int    `json:"user_id"`
	PostID int    `json:"post_id"`
	// AuthorName is the commenting user's username, joined in for display.
	AuthorName string `json:"author_name"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}
