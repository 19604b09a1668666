// Package models defines the read-only projections of backend resources the
// client works with. Records live only as long as the screen that fetched
// them; nothing here is cached or shared across screens.
package models

import "time"

// User is the identity bound to an authenticated session.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Category is a content category. DocumentID is the backend's stable
// public identifier used in URLs; ID is the numeric row id used when
// linking an article to a category.
type Category struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
	Name       string `json:"name"`
}

// Article is a travel article as returned by the backend. User and Category
// are only present when the list/get call asked for them to be populated.
type Article struct {
	ID            int       `json:"id"`
	DocumentID    string    `json:"documentId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	User          *User     `json:"user,omitempty"`
	Category      *Category `json:"category,omitempty"`
}
