package model

import "time"

// Company is a directory entry mapping a normalized company slug to the
// external assistant provisioned for its demo. The backing store is
// authoritative; a slug maps to at most one assistant at a time and the
// last write wins.
type Company struct {
	ID           int64     `json:"id,string"`
	Slug         string    `json:"slug"`
	AssistantID  string    `json:"assistant_id"`
	Name         string    `json:"name"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
