package users

import "time"

// User is an externally authenticated identity. The id is issued by the
// identity provider and is stable and globally unique; records are
// created or refreshed by upsert on that id.
type User struct {
	ID              string    `json:"id"`
	Email           *string   `json:"email,omitempty"`
	FirstName       *string   `json:"firstName,omitempty"`
	LastName        *string   `json:"lastName,omitempty"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UpsertUserInput carries the identity claims to create or refresh a user.
type UpsertUserInput struct {
	ID              string
	Email           *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
}
