package models

// Post represents a row of the posts table.
//
// ProfileImageRef is copied from the author at creation time and is not
// updated afterwards.
type Post struct {
	ID              int64   `json:"id" db:"id"`
	Username        string  `json:"username" db:"username"`
	ProfileImageRef string  `json:"profile_image_ref" db:"profile_image_ref"`
	PostImageRef    *string `json:"post_image_ref" db:"post_image_ref"` // nil when the post has no image
	CreatedAt       int64   `json:"created_at" db:"created_at"`         // Unix seconds
	TextContent     string  `json:"text_content" db:"text_content"`
}
