package models

import "time"

// Post is a text entry owned by exactly one user. Deletion is soft: reads
// filter on DeletedAt being unset.
type Post struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Likes     int64      `json:"likes"`
	UserID    string     `json:"user"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}
