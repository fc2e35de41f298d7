// Package models holds the persistent record types of the blog.
package models

import "time"

// User is a registered account. PasswordHash is a salted bcrypt digest; the
// plaintext never reaches storage or logs, and the hash is kept out of JSON
// responses.
//
// PostIDs is the reverse reference to the posts the user owns. It is
// appended in the same transaction that inserts a post, so both sides of
// the relation move together.
type User struct {
	ID           string     `json:"id"`
	FullName     string     `json:"fullName"`
	Age          int        `json:"age"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	PostIDs      []string   `json:"posts"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"deletedAt"`
}

// UserInfo is the public projection returned for a single user: profile
// fields plus the number of posts, never the post list itself.
type UserInfo struct {
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
	Email    string `json:"email"`
	Posts    int    `json:"posts"`
}

// Info builds the public projection of u.
func (u *User) Info() UserInfo {
	return UserInfo{
		FullName: u.FullName,
		Age:      u.Age,
		Email:    u.Email,
		Posts:    len(u.PostIDs),
	}
}
