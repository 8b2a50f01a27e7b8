// Package models defines the records persisted and exchanged by the client core.
package models

import "time"

// UserRecord is a registered account as stored in the local directory.
//
// ID is generated at creation and never reused. Email is kept in its
// normalized (trimmed, lower-cased) form, which also serves as the
// uniqueness key. Password is an opaque string compared byte-for-byte;
// the storage format keeps it verbatim for parity with the data already
// on devices (see DESIGN.md). Records are never mutated after creation.
type UserRecord struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Password  string            `json:"password"`
	Name      string            `json:"name,omitempty"`
	Profile   map[string]string `json:"profile,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// SignupData carries the fields supplied at signup, before the directory
// assigns an id and a creation timestamp. Profile holds any extra
// free-form fields the signup form collected.
type SignupData struct {
	Email    string
	Password string
	Name     string
	Profile  map[string]string
}
