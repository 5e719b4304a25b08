// Package page defines editable site content keyed by slug.
package page

import "time"

// Page is a block of site content. Slug is the natural key; there is no
// separate numeric identifier.
type Page struct {
	Slug        string                 `json:"slug"`
	Title       string                 `json:"title"`
	Body        string                 `json:"body"`
	Description string                 `json:"description,omitempty"`
	Published   bool                   `json:"published"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
