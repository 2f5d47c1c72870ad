package blogservice

import (
	"net/url"

	"gopress/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 4, 250), "title", "must be between 4 and 250 characters long")
}

func validateSubtitle(v *common.Validator, subtitle string) {
	v.Check(subtitle != "", "subtitle", "must be provided")
	v.Check(v.CheckStringLength(subtitle, 8, 250), "subtitle", "must be between 8 and 250 characters long")
}

func validateAuthorName(v *common.Validator, name string) {
	v.Check(name != "", "author_name", "must be provided")
	v.Check(v.CheckStringLength(name, 3, 250), "author_name", "must be between 3 and 250 characters long")
}

func validateImgURL(v *common.Validator, rawURL string) {
	v.Check(rawURL != "", "img_url", "must be provided")

	u, err := url.Parse(rawURL)
	ok := err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	v.Check(ok, "img_url", "must be a valid URL")
}

func validateBody(v *common.Validator, body string) {
	v.Check(body != "", "body", "must be provided")
}

func validateText(v *common.Validator, text string) {
	v.Check(text != "", "text", "must be provided")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
