package models

import "time"

// Report statuses.
const (
	StatusLost     = "Lost"
	StatusFound    = "Found"
	StatusReturned = "Returned"
)

// ValidStatus reports whether s is one of the allowed report statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusLost, StatusFound, StatusReturned:
		return true
	}
	return false
}

// Report is a single lost-and-found entry. OwnerID is set at creation from
// the authenticated requester and never changes. Number is a snapshot of the
// owner's contact number at creation time and is not kept in sync with later
// profile edits.
type Report struct {
	ID        int       `json:"id"`
	OwnerID   int       `json:"owner"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Location  string    `json:"location"`
	Status    string    `json:"status"` // Lost | Found | Returned
	Number    string    `json:"number,omitempty"`
	ImageKey  string    `json:"-"` // object-store deletion key
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReportWithOwner embeds the owner's public identity for the list-all view.
type ReportWithOwner struct {
	Report
	Owner PublicUser `json:"owner_details"`
}
