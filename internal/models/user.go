package models

// User represents a row of the users table.
type User struct {
	ID              int64  `json:"id" db:"id"`                               // Primary key
	Username        string `json:"username" db:"username"`                   // Unique, immutable
	ProfileImageRef string `json:"profile_image_ref" db:"profile_image_ref"` // Name of an uploaded image
	PasswordHash    string `json:"-" db:"password_hash"`                     // Hex PBKDF2-SHA512 digest
	Salt            string `json:"-" db:"salt"`                              // Hex random salt
}
